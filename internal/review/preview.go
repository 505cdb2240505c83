package review

import "jobtrack/internal/model"

// PreviewNew partitions postings against the seen-store without writing to
// it, so browsing never consumes a posting's novelty. Postings without an ID
// are skipped, matching what a real cycle would drop.
func PreviewNew(st model.SeenStore, postings []model.Posting) ([]model.Posting, error) {
	var fresh []model.Posting
	for _, p := range postings {
		if p.ID == "" {
			continue
		}
		seen, err := st.Contains(p.ID)
		if err != nil {
			return nil, err
		}
		if !seen {
			fresh = append(fresh, p)
		}
	}
	return fresh, nil
}
