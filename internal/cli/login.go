package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yigyaps/yigyaps/pkg/client"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the registry",
	Long: `Authenticate with username and password. The first successful login
creates your account. The issued API key is saved to ~/.yigyaps/config.json
for later commands.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	c, cfg, err := newClient()
	if err != nil {
		return err
	}

	username := strings.TrimSpace(loginUsername)
	if username == "" {
		fmt.Print("Username: ")
		reader := bufio.NewReader(os.Stdin)
		line, rerr := reader.ReadString('\n')
		if rerr != nil {
			return fmt.Errorf("read username: %w", rerr)
		}
		username = strings.TrimSpace(line)
	}

	fmt.Print("Password: ")
	rawPassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	result, err := c.Login(cmd.Context(), client.LoginInput{
		Username: username,
		Password: string(rawPassword),
	})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	cfg.ApiKey = result.ApiKey
	cfg.Username = result.User.Username
	cfg.LastLogin = &now
	cfg.FirstRun = false
	if err := cliconfigSave(cfg); err != nil {
		return err
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("Logged in as %s (tier: %s)", result.User.Username, result.User.Tier)))
	return nil
}
