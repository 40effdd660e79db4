package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/4tenlab/prism-insight/internal/batch"
	"github.com/4tenlab/prism-insight/internal/scheduler"
	"github.com/4tenlab/prism-insight/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "배치 스케줄러 관리",
	Long: `시그널 배치 스케줄러를 시작하거나 등록된 작업을 조회합니다.

등록되는 작업 (KST):
  signal_batch_morning    - 평일 08:45 오전 트리거 배치
  signal_batch_afternoon  - 평일 15:40 오후 트리거 배치

Example:
  go run ./cmd/prism scheduler start
  go run ./cmd/prism scheduler list`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러 데몬을 시작합니다.

오전/오후 시그널 배치가 각자의 크론 스케줄에 등록됩니다.
Ctrl+C로 종료할 수 있습니다.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
}

// buildScheduler wires the scheduler with both batch jobs registered
func buildScheduler() (*scheduler.Scheduler, func(), error) {
	cfg, log, err := setup()
	if err != nil {
		return nil, nil, err
	}

	runner, cleanup, err := buildRunner(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	sched, err := scheduler.New(log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	morning := jobs.NewSignalBatchJob(runner, batch.ModeMorning, cfg.Batch.MorningSchedule, log)
	afternoon := jobs.NewSignalBatchJob(runner, batch.ModeAfternoon, cfg.Batch.AfternoonSchedule, log)

	for _, job := range []scheduler.Job{morning, afternoon} {
		if err := sched.AddJob(job); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("register job: %w", err)
		}
	}

	return sched, cleanup, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Prism Insight Scheduler ===")

	sched, cleanup, err := buildScheduler()
	if err != nil {
		return err
	}
	defer cleanup()

	sched.Start()
	defer sched.Stop()

	fmt.Println("\n✅ Scheduler running")
	for _, name := range sched.Jobs() {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, cleanup, err := buildScheduler()
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Println("Registered jobs:")
	for _, name := range sched.Jobs() {
		fmt.Printf("  - %s\n", name)
	}

	return nil
}
