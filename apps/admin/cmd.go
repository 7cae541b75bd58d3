package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"syscall"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"

	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/portal"
	"github.com/trezcool/masomo-portal/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out      io.Writer
	registry *portal.Registry
	usrSvc   *user.Service
	accounts []core.AccountConfig
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  routes [-role ROLE]              - list the page keys of a role (all roles by default)")
	fmt.Fprintln(cli.out, "  resolve -role ROLE -page KEY     - show the page a role & page key resolve to")
	fmt.Fprintln(cli.out, "  hashpassword [-username NAME]    - hash a password for the accounts config")
	fmt.Fprintln(cli.out, "  accounts                         - check the configured accounts & their portal")
}

func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	routesCmd := cli.flagSet("routes")
	routesRole := routesCmd.String("role", "", "admin | teacher | student")

	resolveCmd := cli.flagSet("resolve")
	resolveRole := resolveCmd.String("role", "", "admin | teacher | student")
	resolvePage := resolveCmd.String("page", "", "The page key to resolve.")

	hashPasswordCmd := cli.flagSet("hashpassword")
	hashPasswordUname := hashPasswordCmd.String("username", "", "The account username, to reject passwords too similar to it. The password will be prompted next.")

	switch args[1] {
	case "routes":
		if err := routesCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		roles := portal.Roles
		if *routesRole != "" {
			role, err := portal.ParseRole(*routesRole)
			if err != nil {
				return err
			}
			roles = []portal.Role{role}
		}
		cli.routes(roles)
		return nil

	case "resolve":
		if err := resolveCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *resolveRole == "" {
			resolveCmd.Usage()
			return errHelp
		}
		role, err := portal.ParseRole(*resolveRole)
		if err != nil {
			return err
		}
		cli.resolve(role, *resolvePage)
		return nil

	case "hashpassword":
		if err := hashPasswordCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			hashPasswordCmd.Usage()
			return errHelp
		}
		return cli.hashPassword(string(pwd), *hashPasswordUname)

	case "accounts":
		return cli.checkAccounts()

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) routes(roles []portal.Role) {
	for _, role := range roles {
		fmt.Fprintf(cli.out, "%s:\n", role)
		for _, page := range cli.registry.Pages(role) {
			fmt.Fprintf(cli.out, "  %-14s %s\n", page.Key, page.Title)
		}
	}
}

func (cli *commandLine) resolve(role portal.Role, pageKey string) {
	page := cli.registry.Resolve(role, pageKey)
	fmt.Fprintf(cli.out, "%s/%s -> %s (%s)\n", role, pageKey, page.Key, page.Title)
	if page.Key == pageKey {
		return
	}

	fmt.Fprintf(cli.out, "%q is not a %s page: falling back to the dashboard\n", pageKey, role)
	if matches := difflib.GetCloseMatches(pageKey, cli.registry.Keys(role), 1, 0.6); len(matches) > 0 {
		fmt.Fprintf(cli.out, "did you mean %q?\n", matches[0])
	}
}

func (cli *commandLine) hashPassword(pwd, username string) error {
	if err := user.ValidatePassword(pwd, username); err != nil {
		return err
	}
	hash, err := user.HashPassword(pwd)
	if err != nil {
		return errors.Wrap(err, "hashing password")
	}
	fmt.Fprintln(cli.out, string(hash))
	return nil
}

// checkAccounts loads the configured accounts like the portal does and prints the portal each one lands on.
func (cli *commandLine) checkAccounts() error {
	ctx := context.Background()
	if err := cli.usrSvc.SeedAccounts(ctx, cli.accounts); err != nil {
		return err
	}
	users, err := cli.usrSvc.QueryAll(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(cli.out, "no accounts configured")
		return nil
	}
	for _, usr := range users {
		role, err := usr.PortalRole()
		if err != nil {
			return errors.Wrapf(err, "account %s", usr.Username)
		}
		fmt.Fprintf(cli.out, "%-16s %-8s %v\n", usr.Username, role, usr.Roles)
	}
	return nil
}
