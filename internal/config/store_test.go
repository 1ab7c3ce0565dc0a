package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"warehouse-print-agent/internal/models"
)

func TestOpenStore_FirstRunCreatesProfile(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenStore(dir, zap.NewNop())
	require.NoError(t, err)

	profile := store.Profile()
	assert.NotEmpty(t, profile.StationID)
	assert.NotNil(t, profile.Routes)
	assert.FileExists(t, filepath.Join(dir, "station.json"))
}

func TestOpenStore_LoadsExistingProfile(t *testing.T) {
	dir := t.TempDir()
	existing := models.StationProfile{
		StationID:   "station-77",
		StationName: "pack-station-3",
		Routes: map[models.DocumentType]models.PrinterRoute{
			models.DocTypeShippingLabel: {PrinterName: "Zebra_ZD420", AutoPrint: true, Enabled: true, Is4x6: true},
		},
		APIURL: "https://portal.example.com/api/print-log",
	}
	data, err := json.Marshal(existing)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "station.json"), data, 0o644))

	store, err := OpenStore(dir, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, existing, store.Profile())
}

func TestOpenStore_CorruptProfileFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "station.json"), []byte("{not json"), 0o644))

	_, err := OpenStore(dir, zap.NewNop())
	assert.Error(t, err)
}

func TestSave_MergesRoutes(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenStore(dir, zap.NewNop())
	require.NoError(t, err)

	_, err = store.Save(models.StationProfile{
		Routes: map[models.DocumentType]models.PrinterRoute{
			models.DocTypeShippingLabel: {PrinterName: "Zebra_ZD420", AutoPrint: true, Enabled: true, Is4x6: true},
		},
	})
	require.NoError(t, err)

	saved, err := store.Save(models.StationProfile{
		Routes: map[models.DocumentType]models.PrinterRoute{
			models.DocTypeInvoice: {PrinterName: "OfficeJet", AutoPrint: true, Enabled: true},
		},
	})
	require.NoError(t, err)

	// Earlier routes survive a save that only touches another type.
	assert.Len(t, saved.Routes, 2)
	assert.Equal(t, "Zebra_ZD420", saved.Routes[models.DocTypeShippingLabel].PrinterName)
	assert.Equal(t, "OfficeJet", saved.Routes[models.DocTypeInvoice].PrinterName)
}

func TestSave_StationIdentityIsImmutable(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenStore(dir, zap.NewNop())
	require.NoError(t, err)
	original := store.Profile().StationID

	saved, err := store.Save(models.StationProfile{StationID: "spoofed"})
	require.NoError(t, err)
	assert.Equal(t, original, saved.StationID)
}

func TestSave_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenStore(dir, zap.NewNop())
	require.NoError(t, err)

	_, err = store.Save(models.StationProfile{
		APIURL: "https://portal.example.com/api/print-log",
		Routes: map[models.DocumentType]models.PrinterRoute{
			models.DocTypePickList: {PrinterName: "Laser1", AutoPrint: true, Enabled: true},
		},
	})
	require.NoError(t, err)

	reopened, err := OpenStore(dir, zap.NewNop())
	require.NoError(t, err)
	profile := reopened.Profile()
	assert.Equal(t, "https://portal.example.com/api/print-log", profile.APIURL)
	assert.Equal(t, "Laser1", profile.Routes[models.DocTypePickList].PrinterName)
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenStore(dir, zap.NewNop())
	require.NoError(t, err)

	_, err = store.Save(models.StationProfile{APIURL: "https://x.example.com"})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestProfile_ReturnsACopy(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenStore(dir, zap.NewNop())
	require.NoError(t, err)

	profile := store.Profile()
	profile.Routes[models.DocTypeInvoice] = models.PrinterRoute{PrinterName: "Injected"}

	_, ok := store.Profile().Routes[models.DocTypeInvoice]
	assert.False(t, ok, "caller mutation must not leak into the store")
}
