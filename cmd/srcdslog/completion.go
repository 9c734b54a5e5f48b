package main

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for srcdslog.

The script completes the listen, tail and parse subcommands and their
flags, including the --format values.

To load completions:

Bash:
  $ source <(srcdslog completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ srcdslog completion bash > /etc/bash_completion.d/srcdslog
  # macOS:
  $ srcdslog completion bash > $(brew --prefix)/etc/bash_completion.d/srcdslog

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ srcdslog completion zsh > "${fpath[1]}/_srcdslog"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ srcdslog completion fish | source

  # To load completions for each session, execute once:
  $ srcdslog completion fish > ~/.config/fish/completions/srcdslog.fish

PowerShell:
  PS> srcdslog completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> srcdslog completion powershell > srcdslog.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.ExactValidArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cmd.Root()
		out := cmd.OutOrStdout()

		switch args[0] {
		case "bash":
			return root.GenBashCompletionV2(out, true)
		case "zsh":
			return root.GenZshCompletion(out)
		case "fish":
			return root.GenFishCompletion(out, true)
		case "powershell":
			return root.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

// completeFormats offers the --format values to shell completion.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	formats := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		formats = append(formats, f)
	}
	return formats, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
