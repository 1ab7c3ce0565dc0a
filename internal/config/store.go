package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"warehouse-print-agent/internal/models"
)

const profileFileName = "station.json"

// Store owns the persisted StationProfile. Reads are frequent (one per job),
// writes rare (explicit settings saves from the local console), so the
// in-memory copy is guarded by an RWMutex and refreshed atomically on save.
// Last writer wins.
type Store struct {
	mu      sync.RWMutex
	path    string
	profile models.StationProfile
	log     *zap.Logger
}

// OpenStore loads the profile from the data dir, creating a fresh one with a
// generated station id on first run. Opening the store is the explicit init
// step: nothing resolves a route before this succeeds.
func OpenStore(dataDir string, log *zap.Logger) (*Store, error) {
	s := &Store{
		path: filepath.Join(dataDir, profileFileName),
		log:  log,
	}

	data, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &s.profile); err != nil {
			return nil, fmt.Errorf("corrupt station profile %s: %w", s.path, err)
		}
	case os.IsNotExist(err):
		hostname, _ := os.Hostname()
		s.profile = models.StationProfile{
			StationID:   uuid.New().String(),
			StationName: hostname,
			Routes:      map[models.DocumentType]models.PrinterRoute{},
		}
		if err := s.writeLocked(); err != nil {
			return nil, err
		}
		log.Info("created station profile",
			zap.String("stationId", s.profile.StationID),
			zap.String("path", s.path))
	default:
		return nil, fmt.Errorf("reading station profile: %w", err)
	}

	if s.profile.Routes == nil {
		s.profile.Routes = map[models.DocumentType]models.PrinterRoute{}
	}
	return s, nil
}

// Profile returns a copy of the current profile. The routes map is cloned so
// callers can never mutate shared state.
func (s *Store) Profile() models.StationProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// Save merges an update into the profile, persists it, and refreshes the
// in-memory copy. Station identity is immutable after creation; route
// entries in the update replace existing ones per document type; an empty
// APIURL in the update leaves the current value alone.
func (s *Store) Save(update models.StationProfile) (models.StationProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if update.StationName != "" && s.profile.StationName == "" {
		s.profile.StationName = update.StationName
	}
	if update.APIURL != "" {
		s.profile.APIURL = update.APIURL
	}
	for dt, route := range update.Routes {
		s.profile.Routes[dt] = route
	}

	if err := s.writeLocked(); err != nil {
		return models.StationProfile{}, err
	}

	s.log.Info("station profile saved",
		zap.String("stationId", s.profile.StationID),
		zap.Int("routes", len(s.profile.Routes)))
	return s.copyLocked(), nil
}

// writeLocked persists via temp file + rename so a crash mid-write cannot
// leave a torn profile on disk.
func (s *Store) writeLocked() error {
	data, err := json.MarshalIndent(s.profile, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding station profile: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing station profile: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing station profile: %w", err)
	}
	return nil
}

func (s *Store) copyLocked() models.StationProfile {
	cp := s.profile
	cp.Routes = make(map[models.DocumentType]models.PrinterRoute, len(s.profile.Routes))
	for dt, route := range s.profile.Routes {
		cp.Routes[dt] = route
	}
	return cp
}
