package sim

import (
	"strings"
	"time"

	"github.com/JaTvoiRabotnik/bushido/internal/duel"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MatchRecord is one finished match as persisted to SQLite.
type MatchRecord struct {
	ID        string `gorm:"primaryKey"`
	Seed      int64
	Turns     int
	Outcome   string
	Winner    string
	Reason    string
	CreatedAt time.Time

	ChallengerStrategy   string
	DefenderStrategy     string
	ChallengerTechniques string
	DefenderTechniques   string
}

// Store persists match records.
type Store struct {
	db *gorm.DB
}

// OpenStore opens (or creates) the SQLite database at path and migrates
// the schema.
func OpenStore(path string) (*Store, error) {
	// Batches insert thousands of rows; gorm's default logger would drown
	// the stats output.
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&MatchRecord{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Save inserts one match record.
func (s *Store) Save(rec MatchRecord) error {
	return s.db.Create(&rec).Error
}

// Records returns all persisted matches, newest first.
func (s *Store) Records() ([]MatchRecord, error) {
	var recs []MatchRecord
	err := s.db.Order("created_at desc").Find(&recs).Error
	return recs, err
}

func newMatchRecord(out matchOutcome, chalStrategy, defStrategy string) MatchRecord {
	rec := MatchRecord{
		ID:                   uuid.NewString(),
		Seed:                 out.seed,
		Turns:                out.turns,
		Outcome:              out.outcome.Kind.String(),
		Reason:               out.outcome.Reason,
		ChallengerStrategy:   chalStrategy,
		DefenderStrategy:     defStrategy,
		ChallengerTechniques: strings.Join(out.chal, ", "),
		DefenderTechniques:   strings.Join(out.def, ", "),
	}
	if out.outcome.Kind == duel.Win || out.outcome.Kind == duel.DishonorLoss {
		rec.Winner = out.outcome.Winner.String()
	}
	return rec
}
