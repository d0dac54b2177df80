package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/llmbar/internal/hooks"
)

var hooksDryRun bool

var installHooksCmd = &cobra.Command{
	Use:   "install-hooks",
	Short: "Install llmbar hooks into Claude Code settings",
	Long: `Register llmbar's event hooks (UserPromptSubmit, PreToolUse, PostToolUse,
Stop) and statusLine command in ~/.claude/settings.json. Existing llmbar
entries are replaced; other hooks are left alone.`,
	Args: cobra.NoArgs,
	RunE: runInstallHooks,
}

var uninstallHooksCmd = &cobra.Command{
	Use:   "uninstall-hooks",
	Short: "Remove llmbar hooks from Claude Code settings",
	Args:  cobra.NoArgs,
	RunE:  runUninstallHooks,
}

func init() {
	installHooksCmd.Flags().BoolVar(&hooksDryRun, "dry-run", false, "Print the resulting settings without writing them")
	uninstallHooksCmd.Flags().BoolVar(&hooksDryRun, "dry-run", false, "Print the resulting settings without writing them")
}

func runInstallHooks(cmd *cobra.Command, args []string) error {
	path, err := hooks.SettingsPath()
	if err != nil {
		return fmt.Errorf("failed to resolve Claude settings path: %w", err)
	}
	bin, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve llmbar path: %w", err)
	}

	res, err := hooks.Install(path, bin, hooksDryRun)
	if err != nil {
		return err
	}
	if hooksDryRun {
		fmt.Println(string(res.Document))
		return nil
	}

	fmt.Printf("%s hooks and statusLine in %s\n", styleSuccess.Render("Installed"), styleHint.Render(res.Path))
	fmt.Println(styleHint.Render("Restart Claude Code for the hooks to take effect."))
	return nil
}

func runUninstallHooks(cmd *cobra.Command, args []string) error {
	path, err := hooks.SettingsPath()
	if err != nil {
		return fmt.Errorf("failed to resolve Claude settings path: %w", err)
	}

	res, err := hooks.Uninstall(path, hooksDryRun)
	if err != nil {
		return err
	}
	if !res.Changed {
		fmt.Println("No llmbar hooks found.")
		return nil
	}
	if hooksDryRun {
		fmt.Println(string(res.Document))
		return nil
	}

	if res.RemovedHooks {
		fmt.Printf("%s hooks from %s\n", styleSuccess.Render("Removed"), styleHint.Render(res.Path))
	}
	if res.RemovedStatusLine {
		fmt.Printf("%s statusLine from %s\n", styleSuccess.Render("Removed"), styleHint.Render(res.Path))
	}
	return nil
}
