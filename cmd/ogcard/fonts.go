package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eringen/ogcard"
)

var fontsCmd = &cobra.Command{
	Use:   "fonts",
	Short: "Manage the server's font registry",
}

var fontsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered fonts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		fonts, err := store.ListFonts()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tWEIGHT\tSTYLE\tURL")
		for _, f := range fonts {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", f.Name, f.Weight, f.Style, f.URL)
		}
		return w.Flush()
	},
}

var fontsAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Register a font face",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, _ := cmd.Flags().GetInt("weight")
		style, _ := cmd.Flags().GetString("style")
		if style != string(ogcard.FontStyleNormal) && style != string(ogcard.FontStyleItalic) {
			return fmt.Errorf("style must be normal or italic, got %q", style)
		}

		if err := ogcard.CheckRemoteFontURL(args[1]); err != nil {
			return err
		}

		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		f := ogcard.FontDescriptor{Name: args[0], URL: args[1], Weight: weight, Style: ogcard.FontStyle(style)}
		if err := store.SaveFont(f); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s %s %s\n", f.Name, strconv.Itoa(f.Weight), f.Style)
		return nil
	},
}

var fontsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove every face of a font",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()
		return store.DeleteFont(args[0])
	},
}

func openStore(cmd *cobra.Command) (*ogcard.FontStore, error) {
	path, _ := cmd.Flags().GetString("db")
	return ogcard.NewFontStore(path)
}

func init() {
	rootCmd.AddCommand(fontsCmd)
	fontsCmd.AddCommand(fontsListCmd, fontsAddCmd, fontsRemoveCmd)
	fontsAddCmd.Flags().Int("weight", 400, "Font weight")
	fontsAddCmd.Flags().String("style", "normal", "Font style (normal or italic)")
}
