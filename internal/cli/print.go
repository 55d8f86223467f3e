package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/honeycarbs/occupation-insights/internal/domain"
	"github.com/honeycarbs/occupation-insights/internal/domain/aggregation"
)

const reportTermsShown = 10

func printReport(w io.Writer, r domain.JobInsightsReport) {
	fmt.Fprintf(w, "\n%s (SOC %s)\n", r.JobTitle, r.SOCCode)
	fmt.Fprintf(w, "Location: %s, %d postings analyzed\n", r.Location, r.TotalPostingsAnalyzed)

	terms := r.Categories()
	for _, c := range domain.Categories() {
		list := terms.Terms(c)
		stats := aggregation.ComputeStats(list)
		fmt.Fprintf(w, "\n%s: %d items, %d mentions\n", c.Label(), stats.TotalItems, stats.TotalMentions)
		for i, t := range list {
			if i == reportTermsShown {
				fmt.Fprintf(w, "  ... %d more\n", len(list)-reportTermsShown)
				break
			}
			fmt.Fprintf(w, "  - %s (%d)\n", t.Term, t.Count)
		}
	}
}

func printPage(w io.Writer, page aggregation.Page) {
	fmt.Fprintln(w, "SOC Code Analysis Results")
	for _, c := range page.Cards {
		marker := " "
		if c.Selected {
			marker = ">"
		}
		fmt.Fprintf(w, "%s %-20s SOC %s  %d jobs, %d analyzed\n", marker, c.Name, c.SOCCode, c.TotalJobsFound, c.TotalDescriptionsAnalyzed)
	}

	if page.Detail == nil {
		return
	}

	d := page.Detail
	fmt.Fprintf(w, "\n%s (SOC %s)\n", d.Name, d.SOCCode)
	fmt.Fprintf(w, "Analysis of %d job postings with %d descriptions analyzed\n", d.TotalJobsFound, d.TotalDescriptionsAnalyzed)
	if len(d.SampleJobTitles) > 0 {
		fmt.Fprintf(w, "Sample job titles: %s\n", strings.Join(d.SampleJobTitles, ", "))
	}

	fmt.Fprintf(w, "\n%s: %d items, %d total mentions, %d avg per item\n",
		page.Category.Label(), page.Stats.TotalItems, page.Stats.TotalMentions, page.Stats.AveragePerItem)
	for _, t := range page.Terms {
		fmt.Fprintf(w, "  %s (%d jobs)\n", t.Term, t.Count)
		for _, s := range t.Context.Sentences {
			fmt.Fprintf(w, "      %q\n", s)
		}
		if t.Context.Remaining > 0 {
			fmt.Fprintf(w, "      +%d more\n", t.Context.Remaining)
		}
	}
}
