package radar

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// organicDiscriminator feeds LeadKey for invite-link joins, which have no actor.
const organicDiscriminator = "organic"

// Pipeline turns raw export text into deduplicated lead records. It owns no
// database of its own; the store handle is passed in at construction and
// released by the caller.
type Pipeline struct {
	store *Store
	debug bool
}

func NewPipeline(store *Store, debug bool) *Pipeline {
	return &Pipeline{store: store, debug: debug}
}

func (p *Pipeline) debugf(format string, args ...any) {
	if p == nil || !p.debug {
		return
	}
	log.Printf(format, args...)
}

// Ingest processes one uploaded export start-to-finish and returns the number
// of records actually inserted. Lines without a parsable timestamp or without a
// recognized event are skipped silently; duplicate keys are skipped silently
// and counted as "not new". Any other storage failure aborts the remaining
// ingestion. Each line's insert is its own unit of work, so an aborted run
// leaves already-inserted rows in place; re-running the same text is idempotent
// and only adds what is missing.
func (p *Pipeline) Ingest(text string, loc Location) (int, error) {
	newCount := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		ts, ok := ParseLineTimestamp(line)
		if !ok {
			linesSkipped.WithLabelValues("no_timestamp").Inc()
			continue
		}
		ev, ok := ClassifyLine(line)
		if !ok {
			linesSkipped.WithLabelValues("no_event").Inc()
			continue
		}

		candidates := p.buildLeads(ts, ev, loc, line)
		if len(candidates) == 0 {
			linesSkipped.WithLabelValues("empty_extraction").Inc()
			continue
		}

		for i := range candidates {
			outcome, err := p.store.InsertLead(&candidates[i])
			if err != nil {
				return newCount, fmt.Errorf("insert lead %q: %w", candidates[i].ID, err)
			}
			if outcome == Duplicate {
				p.debugf("duplicate lead key=%q", candidates[i].ID)
				leadDuplicates.Inc()
				continue
			}
			leadsIngested.WithLabelValues(string(candidates[i].EventKind)).Inc()
			newCount++
		}
	}
	return newCount, nil
}

// buildLeads expands one classified line into candidate records. Manual adds
// naming N subjects fan out to N records sharing timestamp, actor and raw line.
func (p *Pipeline) buildLeads(ts time.Time, ev Classified, loc Location, line string) []Lead {
	now := time.Now().UTC()
	switch ev.Kind {
	case OrganicJoin:
		return []Lead{{
			ID:        LeadKey(ts, ev.Subject, organicDiscriminator, loc),
			EventAt:   ts,
			Subject:   ev.Subject,
			EventKind: OrganicJoin,
			Actor:     ActorSelf,
			District:  loc.District,
			Center:    loc.Center,
			RawLine:   line,
			CreatedAt: now,
		}}
	case ManualAdd:
		subjects := SplitSubjects(ev.Payload)
		leads := make([]Lead, 0, len(subjects))
		for _, subject := range subjects {
			leads = append(leads, Lead{
				ID:        LeadKey(ts, subject, ev.Actor, loc),
				EventAt:   ts,
				Subject:   subject,
				EventKind: ManualAdd,
				Actor:     ev.Actor,
				District:  loc.District,
				Center:    loc.Center,
				RawLine:   line,
				CreatedAt: now,
			})
		}
		return leads
	default:
		return nil
	}
}

// IngestStatus renders the operator-facing outcome of an ingestion attempt.
func IngestStatus(newCount int) string {
	if newCount > 0 {
		return fmt.Sprintf("captured %d new leads", newCount)
	}
	return "no new data found (all lines were duplicates or unrecognized)"
}
