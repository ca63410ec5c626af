package accrual

import (
	"context"
	"sort"
)

type versionKey struct {
	campaignUid   string
	versionNumber int
}

type RepositoryStub struct {
	versions map[versionKey]StoredVersion
}

func NewStubRepository() *RepositoryStub {
	return &RepositoryStub{versions: map[versionKey]StoredVersion{}}
}

func (s *RepositoryStub) Store(ctx context.Context, v StoredVersion) error {
	s.versions[versionKey{v.CampaignUid, v.VersionNumber}] = v
	return nil
}

func (s *RepositoryStub) GetForCampaign(ctx context.Context, campaignUid string) ([]StoredVersion, error) {
	var result []StoredVersion
	for key, v := range s.versions {
		if key.campaignUid == campaignUid {
			result = append(result, v)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].VersionNumber < result[j].VersionNumber
	})
	return result, nil
}

func (s *RepositoryStub) Cleanup() {
	s.versions = map[versionKey]StoredVersion{}
}
