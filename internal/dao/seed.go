package dao

import (
	"strconv"
	"sync"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/domain"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/util"

	"github.com/pkg/errors"
)

const (
	// SeedPassword 初始用户的明文密码
	SeedPassword = "abcd1234"

	seedBaseTime int64 = 1671494400000 // 2022-12-20T00:00:00Z
	seedDay      int64 = 86400000
)

var seedTexts = []string{
	"New Year Resolutions for 2023",
	"Notes on meeting with investor",
	"Vacation itinerary",
	"Notes on Atomic Habits by James Clear",
	"Parenting Tips",
}

// 密码只计算一次 bcrypt
var seedPasswordHash = sync.OnceValues(func() (string, error) {
	return util.GeneratePasswordHash(SeedPassword)
})

// DefaultSeed 返回初始数据：5 条笔记，用户 1 拥有 1-3，用户 2 拥有 4-5
// 每次调用都返回新的副本
func DefaultSeed() (*domain.Seed, error) {
	hash, err := seedPasswordHash()
	if err != nil {
		return nil, errors.Wrap(err, "hash seed password failed")
	}

	seed := &domain.Seed{}
	for i, text := range seedTexts {
		createdAt := seedBaseTime + int64(i)*seedDay
		seed.Notes = append(seed.Notes, &domain.Note{
			ID:        strconv.Itoa(i + 1),
			Text:      text,
			CreatedAt: createdAt,
			UpdatedAt: createdAt + 5*seedDay,
		})
	}

	seed.Users = []*domain.User{
		{
			ID:        "1",
			Name:      "Saurabh",
			Email:     "saurabh@example.com",
			Password:  hash,
			Notes:     []string{"1", "2", "3"},
			CreatedAt: seedBaseTime,
			UpdatedAt: seedBaseTime,
		},
		{
			ID:        "2",
			Name:      "Arpita",
			Email:     "arpita@example.com",
			Password:  hash,
			Notes:     []string{"4", "5"},
			CreatedAt: seedBaseTime,
			UpdatedAt: seedBaseTime,
		},
	}
	return seed, nil
}
