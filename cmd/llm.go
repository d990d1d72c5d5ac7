package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/junwei/stepmath/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		path, err := requestLogPath(cmd)
		if err != nil {
			return err
		}

		records, err := readRequestLog(path)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Println("No LLM requests logged yet.")
				return nil
			}
			return err
		}

		if purpose != "" {
			filtered := records[:0]
			for _, r := range records {
				if r.Purpose == purpose {
					filtered = append(filtered, r)
				}
			}
			records = filtered
		}
		if limit > 0 && len(records) > limit {
			records = records[len(records)-limit:]
		}
		if len(records) == 0 {
			fmt.Println("No LLM requests logged yet.")
			return nil
		}

		fmt.Printf("%-19s  %-14s  %-28s  %-6s  %-6s  %-7s  %-9s  %s\n",
			"Timestamp", "Purpose", "Model", "In", "Out", "Ms", "Cost", "OK")
		fmt.Println(strings.Repeat("─", 104))

		var totalCost float64
		costKnown := true
		for _, r := range records {
			ok := "✓"
			if !r.Success {
				ok = "✗"
			}
			model := r.Model
			if len(model) > 28 {
				model = model[:28]
			}
			costCol := "?"
			if c := llm.LookupCost(r.Model); c != nil {
				usd := c.Cost(r.InputTokens, r.OutputTokens)
				totalCost += usd
				costCol = formatCost(usd)
			} else {
				costKnown = false
			}
			fmt.Printf("%-19s  %-14s  %-28s  %-6d  %-6d  %-7d  %-9s  %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				r.Purpose, model, r.InputTokens, r.OutputTokens, r.LatencyMs, costCol, ok)
		}

		fmt.Println(strings.Repeat("─", 104))
		label := "Total estimated cost"
		if !costKnown {
			label = "Total estimated cost (partial)"
		}
		fmt.Printf("%s: %s\n", label, formatCost(totalCost))
		return nil
	},
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

// loggedRequest is one line of the JSONL request log.
type loggedRequest struct {
	Timestamp time.Time `json:"t"`
	llm.RequestRecord
}

func readRequestLog(path string) ([]loggedRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []loggedRequest
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var rec loggedRequest
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, sc.Err()
}

func init() {
	llmListCmd.Flags().Int("limit", 20, "Maximum number of requests to show")
	llmListCmd.Flags().String("purpose", "", "Filter by purpose label")
	llmCmd.AddCommand(llmListCmd)
}
