package multibranch

import (
	"fmt"

	"github.com/mitchellh/colorstring"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type textFormatter struct {
	colorize *colorstring.Colorize
	colors   map[logrus.Level]string
}

func newTextFormatter(v *viper.Viper) *textFormatter {
	return &textFormatter{
		colorize: &colorstring.Colorize{
			Colors: colorstring.DefaultColors,
			Reset:  true,
		},
		colors: map[logrus.Level]string{
			logrus.PanicLevel: v.GetString("log_color_panic"),
			logrus.FatalLevel: v.GetString("log_color_fatal"),
			logrus.ErrorLevel: v.GetString("log_color_error"),
			logrus.WarnLevel:  v.GetString("log_color_warn"),
			logrus.InfoLevel:  v.GetString("log_color_info"),
			logrus.DebugLevel: v.GetString("log_color_debug"),
		},
	}
}

func (f *textFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var prefix = "[" + f.colors[entry.Level] + "]"
	app := entry.Data["app"]
	if app != nil {
		switch app := app.(type) {
		case string:
			project := entry.Data["project"]
			if project != nil {
				switch project := project.(type) {
				case string:
					prefix = fmt.Sprintf("%s%s.%s ≫ ", prefix, app, project)
				}
			} else {
				prefix = fmt.Sprintf("%s%s ≫ ", prefix, app)
			}
		}
	}
	return []byte(f.colorize.Color(fmt.Sprintf("%s%s\n", prefix, entry.Message))), nil
}
