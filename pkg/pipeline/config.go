package pipeline

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/molfig/pkg/errors"
)

// LoadConfig decodes a TOML config file onto opts. Keys absent from the
// file keep their current values, so callers start from [DefaultOptions]
// and apply explicit flags afterwards.
//
// Example file:
//
//	rotate = 30
//	aromatic_circles = true
//	chemfig_command = true
//	cross_bonds = "5-6"
//	formats = ["tex", "svg"]
func LoadConfig(path string, opts *Options) error {
	md, err := toml.DecodeFile(path, opts)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidOption, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidOption, "config %s: unknown key(s): %s", path, strings.Join(keys, ", "))
	}
	opts.validated = false
	return nil
}
