package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asferrer/project-planner-app/config"
	"github.com/asferrer/project-planner-app/core/model"
	"github.com/asferrer/project-planner-app/core/plan"
	"github.com/asferrer/project-planner-app/infra/logger"
	"github.com/asferrer/project-planner-app/pkg/export"
)

var (
	planInput       string
	planOutput      string
	planWorkloadCSV string
	planCostsCSV    string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a project document and write the result",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planInput, "input", "i", "", "project document (JSON or YAML)")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "", "output document path (stdout when omitted)")
	planCmd.Flags().StringVar(&planWorkloadCSV, "workload-csv", "", "write the per-role workload table to this CSV file")
	planCmd.Flags().StringVar(&planCostsCSV, "costs-csv", "", "write the cost breakdown to this CSV file")
	_ = planCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.SetGlobalLevel(cfg.Logging.Level)
	logg := logger.New("plan-command")

	doc, err := model.LoadDocument(planInput)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	planner, err := plan.NewPlanner(cfg.Planner, logger.New("planner"), nil, nil)
	if err != nil {
		return err
	}
	res, err := planner.Run(doc)
	if err != nil {
		return err
	}

	// Render everything before touching any output file so a late failure
	// leaves no partial document behind.
	var out bytes.Buffer
	if err := export.WriteDocument(&out, res.Document(doc)); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if planOutput == "" {
		if _, err := os.Stdout.Write(out.Bytes()); err != nil {
			return err
		}
	} else if err := os.WriteFile(planOutput, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	if planWorkloadCSV != "" {
		var buf bytes.Buffer
		if err := export.WriteWorkloadCSV(&buf, res.Workload); err != nil {
			return fmt.Errorf("encode workload: %w", err)
		}
		if err := os.WriteFile(planWorkloadCSV, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write workload: %w", err)
		}
	}
	if planCostsCSV != "" {
		var buf bytes.Buffer
		if err := export.WriteCostsCSV(&buf, res.Tasks, res.Costs); err != nil {
			return fmt.Errorf("encode costs: %w", err)
		}
		if err := os.WriteFile(planCostsCSV, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write costs: %w", err)
		}
	}

	logg.Infof("planned %d tasks, makespan %d days", len(res.Tasks), res.MakespanDays)
	return nil
}
