// Command zvm runs compiled Zata modules end to end.
package main

import (
	"crypto/x509"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zloader"
	"github.com/zata-lang/zvm/zmodule"
	"github.com/zata-lang/zvm/zvm"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "zvm",
		Short: "Zata Virtual Machine",
	}
	root.AddCommand(runCmd(), disasmCmd(), loadlibCmd())
	return root
}

func runCmd() *cobra.Command {
	var verify bool
	cmd := &cobra.Command{
		Use:   "run <module.zvmb>",
		Short: "Execute a compiled module and print the final operand stack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verify {
				if err := verifyModuleFile(args[0]); err != nil {
					return err
				}
			}
			mod, err := zmodule.Load(args[0])
			if err != nil {
				return err
			}
			machine := zvm.New(zvm.WithStdout(os.Stdout), zvm.WithStdin(os.Stdin))
			stack, zerr := machine.Run(mod)
			if zerr != nil {
				zerror.Report(os.Stderr, zerr, machine.Traceback())
				os.Exit(zerr.Code)
			}
			for _, v := range stack {
				fmt.Println(describe(v))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "verify a detached PKCS#7 signature before running")
	return cmd
}

// verifyModuleFile checks modulePath against a detached signature stored
// alongside it at modulePath+".sig", against the host's system root pool.
func verifyModuleFile(modulePath string) error {
	moduleBytes, err := os.ReadFile(modulePath)
	if err != nil {
		return err
	}
	sig, err := os.ReadFile(modulePath + ".sig")
	if err != nil {
		return fmt.Errorf("--verify requires a detached signature at %s.sig: %w", modulePath, err)
	}
	roots, err := x509.SystemCertPool()
	if err != nil || roots == nil {
		roots = x509.NewCertPool()
	}
	return zmodule.VerifySignature(moduleBytes, sig, roots)
}

func disasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <module.zvmb>",
		Short: "Print the opcode stream of a module's code object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mod, err := zmodule.Load(args[0])
			if err != nil {
				return err
			}
			printDisasm(mod.Code)
			return nil
		},
	}
}

func loadlibCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loadlib <path> <export...>",
		Short: "Resolve a native shared library's exports without calling them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := zloader.Load(args[0], args[1:])
			if err != nil {
				return err
			}
			for name := range lib.Exports {
				fmt.Println(name)
			}
			return nil
		},
	}
}
