// Package anonymize turns candidate PII into salted, truncated digests for the
// audit log. The digests identify repeat submissions; they are not a security
// boundary.
package anonymize

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go-hiring-assistant/internal/domain"
)

// DigestLength is the number of hex characters kept from the SHA-256 digest.
const DigestLength = 16

type Anonymizer struct {
	salt string
}

func New(salt string) *Anonymizer {
	return &Anonymizer{salt: salt}
}

// Digest returns hex(sha256(salt + value)) truncated to DigestLength.
func (a *Anonymizer) Digest(value string) string {
	sum := sha256.Sum256([]byte(a.salt + value))
	return hex.EncodeToString(sum[:])[:DigestLength]
}

// Anonymize builds the persisted record for c. The candidate is normalized first,
// so only the branch matching YearsExp is copied.
func (a *Anonymizer) Anonymize(c domain.Candidate, now time.Time) domain.CandidateRecord {
	c = c.Normalize()

	rec := domain.CandidateRecord{
		ID:                a.Digest(c.Email + c.Phone),
		NameHash:          a.Digest(c.Name),
		EmailHash:         a.Digest(c.Email),
		PhoneHash:         a.Digest(c.Phone),
		YearsExp:          c.YearsExp,
		DesiredPositions:  append([]string{}, c.DesiredPositions...),
		Location:          c.Location,
		TechStack:         append([]string{}, c.TechStack...),
		PreferredLocation: c.PreferredLocation,
		CreatedAt:         now.UTC().Format(time.RFC3339),
	}

	if f := c.Fresher; f != nil {
		rec.Degree = &f.Degree
		rec.Domain = &f.Domain
		rec.CGPA = &f.CGPA
		rec.Marks12th = &f.Marks12th
		rec.Marks10th = &f.Marks10th
	}
	if e := c.Experience; e != nil {
		rec.LastCompany = &e.LastCompany
		rec.YearsInCompany = &e.YearsInCompany
		rec.PositionInCompany = &e.PositionInCompany
	}

	return rec
}
