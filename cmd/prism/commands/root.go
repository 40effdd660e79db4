package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	logLevel  string
	logFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "prism",
	Short: "Prism Insight - 일별 시그널 종목 스크리닝 엔진",
	Long: `Prism Insight Unified CLI

KRX 전종목 일별 시세를 받아 6개 트리거로 시그널 종목을 뽑고
무료/프리미엄 티어로 배분한 리포트를 발행합니다.

Usage:
  go run ./cmd/prism [command]

Examples:
  go run ./cmd/prism batch morning
  go run ./cmd/prism scheduler start
  go run ./cmd/prism api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (json|console)")
}
