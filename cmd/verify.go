package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xll-gen/bundlefile/internal/generator"
	"github.com/xll-gen/bundlefile/internal/ui"
	"github.com/xll-gen/bundlefile/pkg/log"
)

// verifyCmd represents the verify command.
var verifyCmd = &cobra.Command{
	Use:   "verify <input> <generated>",
	Short: "Check that a generated file declares exactly the bytes of its input",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		_, err := setup(cmd)
		if err == nil {
			err = runVerify(printer, args[0], args[1])
		}
		log.Close()
		if err != nil {
			printer.PrintError("verify", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

// runVerify decodes generated and compares it with input, reporting the
// declaration it found.
//
// Returns:
//   - error: A decode error or the first mismatch, or nil if the file round-trips.
func runVerify(p *ui.Printer, input, generated string) error {
	a, err := generator.Verify(input, generated)
	if err != nil {
		return err
	}

	p.PrintHeader(fmt.Sprintf("Verified %s", generated))
	p.PrintSuccess("package", a.Package)
	p.PrintSuccess("variable", a.Variable)
	p.PrintSuccess("content", ui.Size(int64(len(a.Data))))
	return nil
}
