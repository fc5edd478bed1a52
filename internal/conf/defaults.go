// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"

	"github.com/tphakala/roamvid/internal/videoname"
)

// Sets default values for the configuration.
func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("root", ".")

	v.SetDefault("cleanup.freespace", 0)
	v.SetDefault("cleanup.pretend", false)

	v.SetDefault("naming.bucketwidth", videoname.DefaultBucketWidth)
	v.SetDefault("naming.strictdot", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")

	v.SetDefault("output.format", FormatText)

	v.SetDefault("metrics.file", "")
}
