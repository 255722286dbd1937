package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Yates-Labs/roam/internal/language"
	"github.com/Yates-Labs/roam/internal/render"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages itineraries can be written in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printLanguages(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

func printLanguages(w io.Writer) error {
	rows := make([][]string, 0, len(language.Supported()))
	for _, l := range language.Supported() {
		_, font := render.FontFor(l)
		rows = append(rows, []string{l.Name, l.Code(), string(l.Script), font})
	}
	_, err := fmt.Fprintln(w, renderTable([]string{"Language", "Code", "Script", "Font"}, rows))
	return err
}
