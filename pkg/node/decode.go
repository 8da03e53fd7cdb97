package node

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode copies the node into target, which must be a pointer to a struct or
// map. Fields are matched by their `mapstructure` tag or, failing that, by a
// case-insensitive field name. Scalars are converted where it is lossless
// enough to be unsurprising ("22" into an int field, 1 into a bool).
func (n *Node) Decode(target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}
	if err := dec.Decode(n.ToMapping(true)); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}
