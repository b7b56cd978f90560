// Package iocache is for persisting survey companies, campaigns and responses.
package iocache

import (
	"sync"

	"github.com/huangsam/psicosocial/internal/contract"
)

// StoreManagerImpl hands out the configured SurveyStore instance.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointer during initialization
	survey       contract.SurveyStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetSurveyStore returns the survey store.
func (mgr *StoreManagerImpl) GetSurveyStore() contract.SurveyStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.survey
}
