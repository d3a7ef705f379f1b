package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Changed reports whether flagName was set explicitly on the command, its parents, or the root.
func Changed(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.Flags(),
		command.PersistentFlags(),
		command.InheritedFlags(),
	}
	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}
	return false
}

// OverrideString returns the flag value when it was set explicitly and current otherwise.
func OverrideString(command *cobra.Command, flagName string, current string) string {
	if !Changed(command, flagName) {
		return current
	}
	flag := lookup(command, flagName)
	if flag == nil {
		return current
	}
	return flag.Value.String()
}

// OverrideStringSlice returns the flag values when the flag was set explicitly and current otherwise.
func OverrideStringSlice(command *cobra.Command, flagName string, current []string) []string {
	if !Changed(command, flagName) {
		return current
	}
	flag := lookup(command, flagName)
	if flag == nil {
		return current
	}
	if sliceValue, isSlice := flag.Value.(pflag.SliceValue); isSlice {
		return append([]string(nil), sliceValue.GetSlice()...)
	}
	return []string{flag.Value.String()}
}

func lookup(command *cobra.Command, flagName string) *pflag.Flag {
	if flag := command.Flags().Lookup(flagName); flag != nil {
		return flag
	}
	if flag := command.InheritedFlags().Lookup(flagName); flag != nil {
		return flag
	}
	return command.Root().PersistentFlags().Lookup(flagName)
}
