package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/admitcrm/core"
	"github.com/trezcool/admitcrm/core/student"
	inmemdb "github.com/trezcool/admitcrm/storage/database/inmem"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db           *inmemdb.DB
	svc          *student.Service
	validate     *validator.Validate
	translator   ut.Translator
	defaultLimit int
	out          io.Writer

	jsonOutput bool
}

func (cli *commandLine) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Query the admissions CRM from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Usage()
			return errHelp
		},
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)
	root.PersistentFlags().BoolVar(&cli.jsonOutput, "json", false, "Print JSON even on a terminal.")

	root.AddCommand(
		cli.newDashboardCmd(),
		cli.newStudentsCmd(),
		cli.newProfileCmd(),
		cli.newExportCmd(),
	)
	return root
}

func (cli *commandLine) run(args []string) error {
	cli.jsonOutput = false
	root := cli.newRootCmd()
	if len(args) < 2 {
		_ = root.Usage()
		return errHelp
	}
	root.SetArgs(args[1:])

	if err := root.Execute(); err != nil {
		if strings.HasPrefix(err.Error(), "unknown command") {
			_ = root.Usage()
			return errHelp
		}
		return err
	}
	return nil
}

// tableOutput reports whether results should be printed as tables rather than JSON.
func (cli *commandLine) tableOutput() bool {
	if cli.jsonOutput {
		return false
	}
	f, ok := cli.out.(*os.File)
	return ok && isTerminalFunc(int(f.Fd()))
}

func (cli *commandLine) printJSON(v interface{}) error {
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (cli *commandLine) newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
}

// validationErr turns validation failures into a readable CLI error.
func (cli *commandLine) validationErr(err error) error {
	var fields map[string]string
	switch vErr := err.(type) {
	case validator.ValidationErrors:
		fields = core.TranslateErrors(vErr, cli.translator)
	case *core.ValidationError:
		fields = vErr.FieldMap()
	}
	if len(fields) == 0 {
		return err
	}

	msgs := make([]string, 0, len(fields))
	for fld, msg := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fld, msg))
	}
	sort.Strings(msgs)
	return fmt.Errorf("invalid arguments: %s", strings.Join(msgs, "; "))
}
