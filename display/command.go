package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/teranos/jazzgraph/errors"
)

// OutputEnv selects the output format when no --json flag is given
const OutputEnv = "JAZZGRAPH_OUTPUT"

// ShouldOutputJSON determines if a command should output JSON based on flags and the environment
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return envWantsJSON()
	}

	// Local --json flag wins when explicitly set
	if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	if globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json"); globalFlag {
		return true
	}
	return envWantsJSON()
}

func envWantsJSON() bool {
	return strings.EqualFold(os.Getenv(OutputEnv), "json")
}

// OutputJSON marshals and prints JSON using display.MarshalJSON
func OutputJSON(v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	fmt.Println(string(data))
	return nil
}
