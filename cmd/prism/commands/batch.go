package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/4tenlab/prism-insight/internal/batch"
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [mode]",
	Short: "시그널 배치 1회 실행",
	Long: `지정한 모드의 트리거 배치를 한 번 실행하고 리포트를 발행합니다.

Modes:
  morning    - 오전 트리거 (거래량 급증, 갭 상승, 시총 대비 자금 유입)
  afternoon  - 오후 트리거 (일중 상승률, 마감 강도, 거래량 증가 횡보)

Example:
  go run ./cmd/prism batch morning
  go run ./cmd/prism batch afternoon --output ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

var (
	batchOutputDir  string
	batchParamsFile string
)

func init() {
	rootCmd.AddCommand(batchCmd)

	// Flags
	batchCmd.Flags().StringVar(&batchOutputDir, "output", "", "리포트 출력 디렉터리 (기본: 설정값)")
	batchCmd.Flags().StringVar(&batchParamsFile, "params", "", "트리거 파라미터 YAML 파일")
}

func runBatch(cmd *cobra.Command, args []string) error {
	mode, err := batch.ParseMode(args[0])
	if err != nil {
		return err
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}

	if batchOutputDir != "" {
		cfg.Batch.OutputDir = batchOutputDir
	}
	if batchParamsFile != "" {
		cfg.Batch.ParamsFile = batchParamsFile
	}

	runner, cleanup, err := buildRunner(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	path, err := runner.Run(context.Background(), mode)
	if err != nil {
		return fmt.Errorf("batch run: %w", err)
	}

	fmt.Printf("✅ Report written: %s\n", path)
	return nil
}
