package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"quicknotes-be/internal/client"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "quicknotes",
		Usage: "terminal client for the quicknotes API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Value:   "http://localhost:3000",
				Usage:   "API base URL",
				EnvVars: []string{"QUICKNOTES_SERVER"},
			},
			&cli.StringFlag{
				Name:    "token-file",
				Usage:   "where the login token is kept (default: user config dir)",
				EnvVars: []string{"QUICKNOTES_TOKEN_FILE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "register",
				Usage:     "create an account",
				ArgsUsage: "<username> <password>",
				Action:    register,
			},
			{
				Name:      "login",
				Usage:     "log in and remember the token",
				ArgsUsage: "<username> <password>",
				Action:    login,
			},
			{
				Name:   "logout",
				Usage:  "forget the stored token",
				Action: logout,
			},
			{
				Name:  "notes",
				Usage: "manage your notes",
				Subcommands: []*cli.Command{
					{Name: "list", Usage: "show all notes", Action: listNotes},
					{Name: "add", Usage: "create a note", ArgsUsage: "<title> <content>", Action: addNote},
					{Name: "update", Usage: "replace a note", ArgsUsage: "<id> <title> <content>", Action: updateNote},
					{Name: "delete", Usage: "delete a note", ArgsUsage: "<id>", Action: deleteNote},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("%s", describe(err))
		os.Exit(1)
	}
}

func newClient(c *cli.Context) (*client.Client, error) {
	path := c.String("token-file")
	if path == "" {
		var err error
		if path, err = client.DefaultTokenPath(); err != nil {
			return nil, err
		}
	}
	return client.New(c.String("server"), client.NewFileTokenStore(path)), nil
}

// args returns exactly n positional arguments or a usage error.
func args(c *cli.Context, n int) ([]string, error) {
	if c.NArg() != n {
		return nil, fmt.Errorf("usage: %s %s", c.Command.FullName(), c.Command.ArgsUsage)
	}
	return c.Args().Slice(), nil
}

func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, client.ErrConnectivity):
		return client.ErrConnectivity.Error()
	default:
		return err.Error()
	}
}

func register(c *cli.Context) error {
	a, err := args(c, 2)
	if err != nil {
		return err
	}
	qc, err := newClient(c)
	if err != nil {
		return err
	}

	res, err := qc.Register(c.Context, a[0], a[1])
	if err != nil {
		return err
	}
	color.Green("%s. Please login.", res.Message)
	return nil
}

func login(c *cli.Context) error {
	a, err := args(c, 2)
	if err != nil {
		return err
	}
	qc, err := newClient(c)
	if err != nil {
		return err
	}

	if err := qc.Login(c.Context, a[0], a[1]); err != nil {
		return err
	}
	color.Green("Logged in as %s", a[0])
	return nil
}

func logout(c *cli.Context) error {
	qc, err := newClient(c)
	if err != nil {
		return err
	}
	if err := qc.Logout(); err != nil {
		return err
	}
	color.Green("Logged out")
	return nil
}

func listNotes(c *cli.Context) error {
	qc, err := newClient(c)
	if err != nil {
		return err
	}

	notes, err := qc.ListNotes(c.Context)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		color.Yellow("No notes yet")
		return nil
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCONTENT\tUPDATED")
	for _, n := range notes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n.Id, n.Title, n.Content, n.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func addNote(c *cli.Context) error {
	a, err := args(c, 2)
	if err != nil {
		return err
	}
	qc, err := newClient(c)
	if err != nil {
		return err
	}

	n, err := qc.CreateNote(c.Context, a[0], a[1])
	if err != nil {
		return err
	}
	color.Green("Note created successfully (%s)", n.Id)
	return nil
}

func updateNote(c *cli.Context) error {
	a, err := args(c, 3)
	if err != nil {
		return err
	}
	qc, err := newClient(c)
	if err != nil {
		return err
	}

	if _, err := qc.UpdateNote(c.Context, a[0], a[1], a[2]); err != nil {
		return err
	}
	color.Green("Note updated successfully")
	return nil
}

func deleteNote(c *cli.Context) error {
	a, err := args(c, 1)
	if err != nil {
		return err
	}
	qc, err := newClient(c)
	if err != nil {
		return err
	}

	if err := qc.DeleteNote(c.Context, a[0]); err != nil {
		return err
	}
	color.Green("Note deleted successfully")
	return nil
}
