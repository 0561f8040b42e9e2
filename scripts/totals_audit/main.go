// Command totals_audit fetches student records from the server of record and
// reports rows where its precomputed combined totals or performance levels
// disagree with locally derived values. Exit code 1 means at least one
// mismatch was found.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
	"github.com/noah-isme/alanjal-marks-api/internal/scoring"
	"github.com/noah-isme/alanjal-marks-api/internal/upstream"
	"github.com/noah-isme/alanjal-marks-api/pkg/config"
)

type mismatch struct {
	StudentID   string
	FullName    string
	Phase       models.Phase
	ServerTotal *float64
	LocalTotal  float64
	ServerLevel *string
	LocalLevel  scoring.Level
}

func main() {
	var (
		baseURL   string
		weekID    string
		phaseFlag int
		timeout   time.Duration
	)

	flag.StringVar(&baseURL, "base-url", "http://localhost:8000/api", "server of record base URL")
	flag.StringVar(&weekID, "week", "", "week scope passed to the students endpoint")
	flag.IntVar(&phaseFlag, "phase", 1, "assessment phase to audit (1 or 2)")
	flag.DurationVar(&timeout, "timeout", 15*time.Second, "HTTP client timeout")
	flag.Parse()

	phase := models.Phase(phaseFlag)
	if !phase.Valid() {
		fmt.Fprintln(os.Stderr, "phase must be 1 or 2")
		os.Exit(2)
	}

	client := upstream.New(config.UpstreamConfig{BaseURL: baseURL, Timeout: timeout}, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	students, err := client.ListStudents(ctx, weekID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to fetch students: %v\n", err)
		os.Exit(2)
	}

	var mismatches []mismatch
	for i := range students {
		record := &students[i]
		serverTotal, serverLevel := serverValues(record, phase)
		if serverTotal == nil && serverLevel == nil {
			continue
		}

		localTotal := scoring.CombinedAssessmentTotal(record, record, phase)
		localLevel := scoring.ClassifyCombinedAssessment(record, record, phase)

		totalDiffers := serverTotal != nil && math.Abs(*serverTotal-localTotal) >= 0.005
		levelDiffers := serverLevel != nil && *serverLevel != string(localLevel)
		if totalDiffers || levelDiffers {
			mismatches = append(mismatches, mismatch{
				StudentID:   record.ID,
				FullName:    record.FullName,
				Phase:       phase,
				ServerTotal: serverTotal,
				LocalTotal:  localTotal,
				ServerLevel: serverLevel,
				LocalLevel:  localLevel,
			})
		}
	}

	printReport(len(students), mismatches)
	if len(mismatches) > 0 {
		os.Exit(1)
	}
}

func serverValues(r *models.StudentRecord, phase models.Phase) (*float64, *string) {
	if phase == models.PhaseQ2 {
		return r.AssessmentQ2CombinedTotal, r.AssessmentQ2PerformanceLevel
	}
	return r.AssessmentQ1CombinedTotal, r.AssessmentQ1PerformanceLevel
}

func printReport(total int, mismatches []mismatch) {
	fmt.Printf("audited %d students, %d mismatches\n", total, len(mismatches))
	for _, m := range mismatches {
		serverTotal := "-"
		if m.ServerTotal != nil {
			serverTotal = fmt.Sprintf("%.2f", *m.ServerTotal)
		}
		serverLevel := "-"
		if m.ServerLevel != nil {
			serverLevel = *m.ServerLevel
		}
		fmt.Printf("  %s (%s) q%d: server total=%s level=%s, local total=%.2f level=%s\n",
			m.FullName, m.StudentID, int(m.Phase), serverTotal, serverLevel, m.LocalTotal, m.LocalLevel)
	}
}
