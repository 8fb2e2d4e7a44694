package models

// Note is a timestamped field note. Text is immutable after creation (delete-only).
type Note struct {
	ID        string      `gorm:"primarykey" json:"id"`
	SessionID string      `gorm:"index" json:"-"`
	Text      string      `gorm:"not null" json:"text"`
	Timestamp string      `json:"timestamp"`
	Location  *Coordinate `gorm:"serializer:json" json:"location,omitempty"`
	Position  int         `json:"-"` // preserves most-recent-first order across archive round-trips
	Working   bool        `gorm:"primarykey" json:"-"` // marks an unsaved working-set row; a saved item archives as both
}

// EvidenceID implements evidence.Item
func (n Note) EvidenceID() string { return n.ID }

// Clone implements evidence.Item
func (n Note) Clone() Note {
	cp := n
	cp.Location = n.Location.Clone()
	return cp
}

// Photo is an uploaded image. Notes is the only mutable field after creation.
type Photo struct {
	ID        string      `gorm:"primarykey" json:"id"`
	SessionID string      `gorm:"index" json:"-"`
	URL       string      `gorm:"not null" json:"url"`
	Name      string      `json:"name"`
	Timestamp string      `json:"timestamp"`
	Location  *Coordinate `gorm:"serializer:json" json:"location,omitempty"`
	Notes     string      `json:"notes"`
	Position  int         `json:"-"`
	Working   bool        `gorm:"primarykey" json:"-"`
}

// EvidenceID implements evidence.Item
func (p Photo) EvidenceID() string { return p.ID }

// Clone implements evidence.Item
func (p Photo) Clone() Photo {
	cp := p
	cp.Location = p.Location.Clone()
	return cp
}

// Recording is a captured EVP audio clip. Duration is fixed when capture stops;
// Notes is the only mutable field after creation.
type Recording struct {
	ID        string      `gorm:"primarykey" json:"id"`
	SessionID string      `gorm:"index" json:"-"`
	URL       string      `gorm:"not null" json:"url"`
	Timestamp string      `json:"timestamp"`
	Duration  int         `json:"duration"` // seconds
	Location  *Coordinate `gorm:"serializer:json" json:"location,omitempty"`
	Notes     string      `json:"notes"`
	Position  int         `json:"-"`
	Working   bool        `gorm:"primarykey" json:"-"`
}

// EvidenceID implements evidence.Item
func (r Recording) EvidenceID() string { return r.ID }

// Clone implements evidence.Item
func (r Recording) Clone() Recording {
	cp := r
	cp.Location = r.Location.Clone()
	return cp
}

// CloneNotes deep-copies a note slice
func CloneNotes(notes []Note) []Note {
	if notes == nil {
		return nil
	}
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}

// ClonePhotos deep-copies a photo slice
func ClonePhotos(photos []Photo) []Photo {
	if photos == nil {
		return nil
	}
	out := make([]Photo, len(photos))
	for i, p := range photos {
		out[i] = p.Clone()
	}
	return out
}

// CloneRecordings deep-copies a recording slice
func CloneRecordings(recs []Recording) []Recording {
	if recs == nil {
		return nil
	}
	out := make([]Recording, len(recs))
	for i, r := range recs {
		out[i] = r.Clone()
	}
	return out
}
