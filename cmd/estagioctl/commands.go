package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

const requestTimeout = 60 * time.Second

// apiError mirrors the server's JSON error envelope.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// call performs a request and unwraps the JSON envelope.
func call(cmd *cobra.Command, method, path, contentType string, body io.Reader) (json.RawMessage, error) {
	base, err := serverURL(cmd)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(cmd.Context(), method, base+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	client := &http.Client{Timeout: requestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("unexpected response (%s): %w", resp.Status, err)
	}
	if !env.Success {
		if env.Error != nil {
			return nil, fmt.Errorf("%s: %s", env.Error.Code, env.Error.Message)
		}
		return nil, fmt.Errorf("request failed: %s", resp.Status)
	}
	return env.Data, nil
}

// download fetches a raw (non-envelope) endpoint into a local file.
func download(cmd *cobra.Command, path, outFile string) error {
	base, err := serverURL(cmd)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, base+path, nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: requestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("server returned %s: %s", resp.Status, string(data))
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return err
	}
	return nil
}

var holidaysCmd = &cobra.Command{
	Use:   "holidays [year]",
	Short: "Seed the Portuguese holiday calendar for a year",
	Long: `Generates the fixed and movable national holidays of the given
year and stores them on the server. Rerunning a year is safe; existing
dates are updated in place. Defaults to the current year.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year := time.Now().Year()
		if len(args) > 0 {
			parsed, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year: %s", args[0])
			}
			year = parsed
		}

		data, err := call(cmd, http.MethodPost, fmt.Sprintf("/api/v1/holidays/generate/%d", year), "", nil)
		if err != nil {
			return err
		}

		var holidays []struct {
			Date string `json:"date"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &holidays); err != nil {
			return err
		}

		fmt.Printf("Seeded %d holidays for %d:\n", len(holidays), year)
		for _, h := range holidays {
			fmt.Printf("  %s  %s\n", h.Date[:10], h.Name)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file.csv>",
	Short: "Export the work log to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := download(cmd, "/api/v1/worklogs/export", args[0]); err != nil {
			return err
		}
		fmt.Printf("Exported work log to %s\n", args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import work log entries from a CSV file",
	Long: `Imports entries from a CSV export. Hours are recomputed from the
clock times in the file; entries are matched to existing days by date
and replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		data, err := call(cmd, http.MethodPost, "/api/v1/worklogs/import", "text/csv", f)
		if err != nil {
			return err
		}

		var summary struct {
			Imported int      `json:"imported"`
			Skipped  int      `json:"skipped"`
			Errors   []string `json:"errors"`
		}
		if err := json.Unmarshal(data, &summary); err != nil {
			return err
		}

		fmt.Printf("Imported %d entries, skipped %d\n", summary.Imported, summary.Skipped)
		for _, e := range summary.Errors {
			fmt.Println("  " + e)
		}
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report [file.pdf]",
	Short: "Download the midterm report PDF",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outFile := "midterm-report.pdf"
		if len(args) > 0 {
			outFile = args[0]
		}
		if err := download(cmd, "/api/v1/reports/midterm-pdf", outFile); err != nil {
			return err
		}
		fmt.Printf("Saved midterm report to %s\n", outFile)
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the internship progress dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := call(cmd, http.MethodGet, "/api/v1/dashboard", "", nil)
		if err != nil {
			return err
		}

		var stats struct {
			TotalHoursLogged        float64 `json:"totalHoursLogged"`
			TotalHoursRequired      float64 `json:"totalHoursRequired"`
			RemainingHours          float64 `json:"remainingHours"`
			PercentComplete         float64 `json:"percentComplete"`
			AvgHoursPerDay          float64 `json:"avgHoursPerDay"`
			DaysWorked              int     `json:"daysWorked"`
			RemainingWorkDays       int     `json:"remainingWorkDays"`
			EstimatedCompletionDate *string `json:"estimatedCompletionDate"`
		}
		if err := json.Unmarshal(data, &stats); err != nil {
			return err
		}

		fmt.Printf("Logged:    %.2f / %.2f hours (%.2f%%)\n",
			stats.TotalHoursLogged, stats.TotalHoursRequired, stats.PercentComplete)
		fmt.Printf("Remaining: %.2f hours over ~%d work days\n",
			stats.RemainingHours, stats.RemainingWorkDays)
		fmt.Printf("Pace:      %.2f hours/day across %d days worked\n",
			stats.AvgHoursPerDay, stats.DaysWorked)
		if stats.EstimatedCompletionDate != nil {
			fmt.Printf("Estimated completion: %s\n", *stats.EstimatedCompletionDate)
		} else {
			fmt.Println("Internship complete.")
		}
		return nil
	},
}
