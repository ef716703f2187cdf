package domain

import "time"

// SnapshotInfo - состояние снимка одного вида сущностей
type SnapshotInfo struct {
	Kind         EntityKind `json:"kind"`
	Ready        bool       `json:"ready"`
	Version      string     `json:"version,omitempty"`
	Entities     int        `json:"entities"`
	WithLocation int        `json:"with_location"`
	WithPrice    int        `json:"with_price"`
	LoadedAt     *time.Time `json:"loaded_at,omitempty"`
}

// KindCounts - счётчики по таблице в БД
type KindCounts struct {
	Total      int `json:"total" db:"total"`
	WithCoords int `json:"with_coords" db:"with_coords"`
	Geocoded   int `json:"geocoded" db:"geocoded"`
}

// Statistics - статистика по данным: что в БД и что загружено в память
type Statistics struct {
	Database  map[EntityKind]KindCounts `json:"database,omitempty"`
	Snapshots []SnapshotInfo            `json:"snapshots"`
	Generated time.Time                 `json:"generated_at"`
}
