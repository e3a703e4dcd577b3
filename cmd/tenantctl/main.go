// tenantctl: CLI operativa del storefront. Inspección y validación de
// configs de tenant, generación de CSS de themes, cifrado de secretos y
// purga remota del cache de configs.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/storefront/internal/security/secretbox"
	"github.com/dropDatabas3/storefront/internal/tenant"
	"github.com/dropDatabas3/storefront/internal/tenant/fsload"
	"github.com/dropDatabas3/storefront/internal/theme"
)

func main() {
	var tenantsDir string

	root := &cobra.Command{
		Use:   "tenantctl",
		Short: "CLI operativa del storefront multi-tenant",
	}
	root.PersistentFlags().StringVar(&tenantsDir, "dir", envOr("TENANTS_DIR", "config"), "directorio con tenants.json y tenants/ (env TENANTS_DIR)")

	// ─── tenants ───

	tenantsCmd := &cobra.Command{
		Use:   "tenants",
		Short: "Operaciones sobre el registry de tenants",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Listar tenants del registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := fsload.New(tenantsDir)
			reg := loader.Registry(context.Background())
			if len(reg.Tenants) == 0 {
				fmt.Println("(registry vacío o ilegible)")
				return nil
			}
			for id, e := range reg.Tenants {
				def := ""
				if e.ConfigFile == reg.Default {
					def = "  (default)"
				}
				fmt.Printf("%-20s %-10s %s%s\n", id, e.Status, e.ConfigFile, def)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <tenant-id>",
		Short: "Mostrar la config resuelta de un tenant (con fallbacks aplicados)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := fsload.New(tenantsDir)
			cfg := loader.Config(context.Background(), tenant.Sanitize(args[0]))
			b, _ := json.MarshalIndent(cfg, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validar registry y todas las configs referenciadas",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateAll(tenantsDir)
		},
	}

	tenantsCmd.AddCommand(listCmd, showCmd, validateCmd)

	// ─── theme ───

	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Operaciones sobre theme presets",
	}

	cssCmd := &cobra.Command{
		Use:   "css <preset>",
		Short: "Emitir el CSS de un preset (ocean|fire|forest)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !theme.Valid(args[0]) {
				return fmt.Errorf("preset desconocido %q (válidos: %v)", args[0], theme.IDs())
			}
			fmt.Print(theme.GenerateCSS(theme.ID(args[0])))
			return nil
		},
	}
	themeCmd.AddCommand(cssCmd)

	// ─── secret ───

	secretCmd := &cobra.Command{
		Use:   "secret",
		Short: "Cifrado de secretos para archivos de tenant",
	}

	encCmd := &cobra.Command{
		Use:   "enc <plaintext>",
		Short: "Cifrar un secreto (ej: password SMTP) con la master key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := secretbox.Encrypt(args[0])
			if err != nil {
				return err
			}
			fmt.Println(ct)
			return nil
		},
	}
	secretCmd.AddCommand(encCmd)

	// ─── revalidate (remoto) ───

	var revURL, revSecret, revTenant string
	revalidateCmd := &cobra.Command{
		Use:   "revalidate",
		Short: "Purgar el cache de configs de un storefront corriendo",
		RunE: func(cmd *cobra.Command, args []string) error {
			if revSecret == "" {
				return fmt.Errorf("falta el secret (flag --secret o env REVALIDATION_SECRET)")
			}
			u := strings.TrimRight(revURL, "/") + "/api/revalidate?secret=" + revSecret
			if revTenant != "" {
				u += "&tenant=" + revTenant
			}
			req, err := http.NewRequest(http.MethodPost, u, nil)
			if err != nil {
				return err
			}
			resp, err := (&http.Client{Timeout: 15 * time.Second}).Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode/100 != 2 {
				return fmt.Errorf("revalidate falló: status=%d body=%s", resp.StatusCode, string(body))
			}
			fmt.Println(string(body))
			return nil
		},
	}
	revalidateCmd.Flags().StringVar(&revURL, "url", envOr("STOREFRONT_URL", "http://localhost:3000"), "URL base del storefront (env STOREFRONT_URL)")
	revalidateCmd.Flags().StringVar(&revSecret, "secret", os.Getenv("REVALIDATION_SECRET"), "secret compartido (env REVALIDATION_SECRET)")
	revalidateCmd.Flags().StringVar(&revTenant, "tenant", "", "purgar sólo este tenant (vacío = todos)")

	root.AddCommand(tenantsCmd, themeCmd, secretCmd, revalidateCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// validateAll valida el registry y cada config referenciada, reportando todo.
func validateAll(dir string) error {
	regPath := dir + "/tenants.json"
	b, err := os.ReadFile(regPath)
	if err != nil {
		return fmt.Errorf("leer registry: %w", err)
	}
	var reg tenant.Registry
	if err := json.Unmarshal(b, &reg); err != nil {
		return fmt.Errorf("parsear registry: %w", err)
	}
	if err := tenant.ValidateRegistry(&reg); err != nil {
		return fmt.Errorf("registry inválido: %w", err)
	}

	failures := 0
	for id, e := range reg.Tenants {
		cb, err := os.ReadFile(dir + "/tenants/" + e.ConfigFile)
		if err != nil {
			fmt.Printf("FAIL %-20s %v\n", id, err)
			failures++
			continue
		}
		var cfg tenant.Config
		if err := json.Unmarshal(cb, &cfg); err != nil {
			fmt.Printf("FAIL %-20s json: %v\n", id, err)
			failures++
			continue
		}
		if err := tenant.ValidateConfig(&cfg); err != nil {
			fmt.Printf("FAIL %-20s %v\n", id, err)
			failures++
			continue
		}
		fmt.Printf("OK   %-20s %s\n", id, e.ConfigFile)
	}
	if failures > 0 {
		return fmt.Errorf("%d config(s) inválidas", failures)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
