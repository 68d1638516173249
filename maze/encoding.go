package maze

import (
	"encoding/json"
	"fmt"
)

// mazeDTO is the wire form of a Maze. Cells are split into parallel status and wall
// byte slices, which encoding/json writes as base64 strings. Snapshots leave the
// original out.
type mazeDTO struct {
	Type           string   `json:"type"`
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	Status         []Status `json:"status"`
	Walls          []Walls  `json:"walls,omitempty"`
	OriginalStatus []Status `json:"original_status,omitempty"`
	OriginalWalls  []Walls  `json:"original_walls,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (m *Maze) MarshalJSON() ([]byte, error) {
	dto := mazeDTO{
		Type:   m.Type().String(),
		Width:  m.width,
		Height: m.height,
		Status: make([]Status, len(m.cells)),
	}
	slim := m.Type() == Slim
	if slim {
		dto.Walls = make([]Walls, len(m.cells))
	}
	if !m.snapshot {
		dto.OriginalStatus = make([]Status, len(m.original))
		if slim {
			dto.OriginalWalls = make([]Walls, len(m.original))
		}
	}

	for i, c := range m.cells {
		dto.Status[i] = c.Status
		if slim {
			dto.Walls[i] = c.Walls
		}
	}
	if !m.snapshot {
		for i, c := range m.original {
			dto.OriginalStatus[i] = c.Status
			if slim {
				dto.OriginalWalls[i] = c.Walls
			}
		}
	}
	return json.Marshal(dto)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Maze) UnmarshalJSON(b []byte) error {
	var dto mazeDTO
	if err := json.Unmarshal(b, &dto); err != nil {
		return err
	}

	t, err := ParseType(dto.Type)
	if err != nil {
		return err
	}
	n := dto.Width * dto.Height
	// A snapshot carries no original; its cells stand in for it
	snapshot := len(dto.OriginalStatus) == 0
	if dto.Width <= 0 || dto.Height <= 0 || len(dto.Status) != n || (!snapshot && len(dto.OriginalStatus) != n) {
		return fmt.Errorf("%w: %dx%d with %d cells", ErrCellCount, dto.Width, dto.Height, len(dto.Status))
	}
	if t == Slim && (len(dto.Walls) != n || (!snapshot && len(dto.OriginalWalls) != n)) {
		return fmt.Errorf("%w: slim maze without wall masks", ErrCellCount)
	}

	cells := make([]Cell, n)
	original := make([]Cell, n)
	for i := 0; i < n; i++ {
		cells[i].Status = dto.Status[i]
		if t == Slim {
			cells[i].Walls = dto.Walls[i]
		}
		if snapshot {
			original[i] = cells[i]
			continue
		}
		original[i].Status = dto.OriginalStatus[i]
		if t == Slim {
			original[i].Walls = dto.OriginalWalls[i]
		}
	}

	*m = Maze{
		rep:      RepresentationOf(t),
		width:    dto.Width,
		height:   dto.Height,
		cells:    cells,
		original: original,
		snapshot: snapshot,
	}
	return nil
}
