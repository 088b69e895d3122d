// Package candidatelog stores the anonymized candidate log as one JSON array.
// Every append loads the whole array, pushes the record and rewrites it.
package candidatelog

import (
	"bytes"
	"encoding/json"

	"go-hiring-assistant/internal/domain"
	"go-hiring-assistant/pkg/logger"
)

// decodeRecords reads a stored array. Empty or corrupt content yields an empty
// log so a damaged file never blocks new submissions.
func decodeRecords(data []byte, source string) []domain.CandidateRecord {
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.CandidateRecord{}
	}
	var records []domain.CandidateRecord
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Log.Warn("Candidate log is unreadable, starting a new one", "source", source, "error", err)
		return []domain.CandidateRecord{}
	}
	if records == nil {
		records = []domain.CandidateRecord{}
	}
	return records
}

func encodeRecords(records []domain.CandidateRecord) ([]byte, error) {
	return json.MarshalIndent(records, "", "  ")
}
