package config

import (
	"github.com/kadaan/lttb/lib/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"regexp"
	"time"
)

const (
	startKey              = "start"
	endKey                = "end"
	sampleIntervalKey     = "sample-interval"
	thresholdKey          = "threshold"
	parallelismKey        = "parallelism"
	seriesConfigFileKey   = "series-config-file"
	seriesFilterKey       = "series-filter"
	outputFormatKey       = "output-format"
	defaultSampleInterval = time.Minute
)

var (
	defaultEnd           = Now.Truncate(time.Minute)
	defaultStart         = defaultEnd.Add(-24 * time.Hour)
	defaultSeriesFilters = []*regexp.Regexp{regexp.MustCompile("^(?:.+)$")}
	yamlFileExtensions   = []string{"yml", "yaml"}
)

func NewFlagBuilder(cmd *cobra.Command) FlagBuilder {
	return &flagBuilder{
		cmd: cmd,
	}
}

type Flag interface {
	Required() Flag
}

type compositeFlag struct {
	flags []Flag
}

func (f *compositeFlag) Required() Flag {
	for _, c := range f.flags {
		_ = c.Required()
	}
	return f
}

type flag struct {
	builder *flagBuilder
	flag    *pflag.Flag
}

func (f *flag) Required() Flag {
	_ = f.builder.cmd.MarkFlagRequired(f.flag.Name)
	return f
}

type FlagBuilder interface {
	TimeRange(startDest *time.Time, endDest *time.Time, usage string) Flag
	Time(dest *time.Time, name string, defaultValue time.Time, usage string) Flag
	SampleInterval(dest *time.Duration, usage string) Flag
	Duration(dest *time.Duration, name string, defaultValue time.Duration, usage string) Flag
	Threshold(dest *int, usage string) Flag
	Parallelism(dest *uint8, defaultValue uint8, usage string) Flag
	SeriesConfig(dest *SeriesConfig, usage string) Flag
	Regex(dest *[]*regexp.Regexp, name string, defaultValue []*regexp.Regexp, usage string) Flag
	SeriesFilters(dest *[]*regexp.Regexp, usage string) Flag
	OutputFormat(dest *OutputFormat, usage string) Flag
}

type flagBuilder struct {
	cmd *cobra.Command
}

func (fb *flagBuilder) newFlag(name string, creator func(flagSet *pflag.FlagSet)) *flag {
	creator(fb.cmd.Flags())
	f := fb.cmd.Flags().Lookup(name)
	_ = viper.BindPFlag(name, f)
	return &flag{
		builder: fb,
		flag:    f,
	}
}

func (fb *flagBuilder) addValidation(validation func(cmd *cobra.Command, args []string) error) {
	if fb.cmd.PreRunE != nil {
		existingValidation := fb.cmd.PreRunE
		fb.cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
			if err := validation(cmd, args); err != nil {
				return err
			}
			return existingValidation(cmd, args)
		}
	} else {
		fb.cmd.PreRunE = validation
	}
}

func (fb *flagBuilder) TimeRange(startDest *time.Time, endDest *time.Time, usage string) Flag {
	startFlag := fb.Time(startDest, startKey, defaultStart, usage+" from")
	endFlag := fb.Time(endDest, endKey, defaultEnd, usage+" to")
	fb.addValidation(func(cmd *cobra.Command, args []string) error {
		if startDest.Unix() < 0 {
			return errors.New("start time %s is before the unix epoch", startDest.Format(time.RFC3339))
		}
		if !startDest.Before(*endDest) {
			return errors.New("start time is not before end time")
		}
		return nil
	})
	return &compositeFlag{
		flags: []Flag{startFlag, endFlag},
	}
}

func (fb *flagBuilder) Time(dest *time.Time, name string, defaultValue time.Time, usage string) Flag {
	return fb.newFlag(name, func(flagSet *pflag.FlagSet) {
		flagSet.Var(NewTimeValue(dest, defaultValue), name, usage)
	})
}

func (fb *flagBuilder) SampleInterval(dest *time.Duration, usage string) Flag {
	f := fb.Duration(dest, sampleIntervalKey, defaultSampleInterval, usage)
	fb.addValidation(func(cmd *cobra.Command, args []string) error {
		if *dest < time.Second {
			return errors.New("%s must be at least 1s, got %s", sampleIntervalKey, *dest)
		}
		return nil
	})
	return f
}

func (fb *flagBuilder) Duration(dest *time.Duration, name string, defaultValue time.Duration, usage string) Flag {
	return fb.newFlag(name, func(flagSet *pflag.FlagSet) {
		flagSet.Var(NewDurationValue(dest, defaultValue), name, usage)
	})
}

func (fb *flagBuilder) Threshold(dest *int, usage string) Flag {
	f := fb.newFlag(thresholdKey, func(flagSet *pflag.FlagSet) {
		flagSet.IntVar(dest, thresholdKey, DefaultThreshold, usage)
	})
	fb.addValidation(func(cmd *cobra.Command, args []string) error {
		if *dest < 0 || *dest == 1 {
			return errors.New("%s must be 0 or at least 2, got %d", thresholdKey, *dest)
		}
		return nil
	})
	return f
}

func (fb *flagBuilder) Parallelism(dest *uint8, defaultValue uint8, usage string) Flag {
	f := fb.newFlag(parallelismKey, func(flagSet *pflag.FlagSet) {
		flagSet.Uint8Var(dest, parallelismKey, defaultValue, usage)
	})
	fb.addValidation(func(cmd *cobra.Command, args []string) error {
		if *dest == 0 {
			return errors.New("%s must be at least 1", parallelismKey)
		}
		return nil
	})
	return f
}

func (fb *flagBuilder) SeriesConfig(dest *SeriesConfig, usage string) Flag {
	return fb.newFlag(seriesConfigFileKey, func(flagSet *pflag.FlagSet) {
		flagSet.Var(NewSeriesConfigValue(dest), seriesConfigFileKey, usage)
		_ = fb.cmd.MarkFlagFilename(seriesConfigFileKey, yamlFileExtensions...)
	})
}

func (fb *flagBuilder) Regex(dest *[]*regexp.Regexp, name string, defaultValue []*regexp.Regexp, usage string) Flag {
	return fb.newFlag(name, func(flagSet *pflag.FlagSet) {
		flagSet.Var(NewRegexValue(dest, defaultValue), name, usage)
	})
}

func (fb *flagBuilder) SeriesFilters(dest *[]*regexp.Regexp, usage string) Flag {
	return fb.Regex(dest, seriesFilterKey, defaultSeriesFilters, usage)
}

func (fb *flagBuilder) OutputFormat(dest *OutputFormat, usage string) Flag {
	return fb.newFlag(outputFormatKey, func(flagSet *pflag.FlagSet) {
		flagSet.VarP(NewOutputFormatValue(dest, Text), outputFormatKey, "o", usage)
	})
}
