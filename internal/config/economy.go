package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/GlebRadaev/komodohub/internal/domain"
)

type Quest struct {
	Code   domain.QuestCode
	Title  string
	Need   int
	Points int64
}

// Economy holds the reward constants. It is built once at start-up and only
// exposes copies, so the services sharing it can't change it underneath each
// other.
type Economy struct {
	pointsPerUnit int64
	signinPoints  int64
	quests        []Quest
}

type economyFile struct {
	PointsPerUnit *int64 `toml:"points_per_unit"`
	SigninPoints  *int64 `toml:"signin_points"`
	Quests        []struct {
		Code   string `toml:"code"`
		Title  string `toml:"title"`
		Need   int    `toml:"need"`
		Points int64  `toml:"points"`
	} `toml:"quest"`
}

func DefaultEconomy() Economy {
	e, _ := NewEconomy(10, 5, []Quest{
		{Code: domain.QuestView5, Title: "View 5 animal cards", Need: 5, Points: 5},
		{Code: domain.QuestShare1, Title: "Share 1 animal card", Need: 1, Points: 5},
		{Code: domain.QuestReport1, Title: "Submit 1 species report", Need: 1, Points: 10},
	})
	return e
}

func NewEconomy(pointsPerUnit, signinPoints int64, quests []Quest) (Economy, error) {
	if pointsPerUnit <= 0 {
		return Economy{}, errors.New("points per unit must be positive")
	}
	if signinPoints < 0 {
		return Economy{}, errors.New("sign-in points can't be negative")
	}
	seen := make(map[domain.QuestCode]struct{}, len(quests))
	for _, q := range quests {
		if _, err := domain.ParseQuestCode(string(q.Code)); err != nil {
			return Economy{}, fmt.Errorf("quest %q: unknown code", q.Code)
		}
		if _, dup := seen[q.Code]; dup {
			return Economy{}, fmt.Errorf("quest %q: defined twice", q.Code)
		}
		if q.Need <= 0 || q.Points <= 0 {
			return Economy{}, fmt.Errorf("quest %q: need and points must be positive", q.Code)
		}
		seen[q.Code] = struct{}{}
	}
	return Economy{
		pointsPerUnit: pointsPerUnit,
		signinPoints:  signinPoints,
		quests:        append([]Quest(nil), quests...),
	}, nil
}

// LoadEconomy reads overrides from a TOML file on top of the defaults. An
// empty path returns the defaults.
func LoadEconomy(path string) (Economy, error) {
	def := DefaultEconomy()
	if path == "" {
		return def, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Economy{}, fmt.Errorf("can't read economy file: %w", err)
	}
	var f economyFile
	if err := toml.Unmarshal(raw, &f); err != nil {
		return Economy{}, fmt.Errorf("can't parse economy file: %w", err)
	}

	ppu, signin, quests := def.pointsPerUnit, def.signinPoints, def.quests
	if f.PointsPerUnit != nil {
		ppu = *f.PointsPerUnit
	}
	if f.SigninPoints != nil {
		signin = *f.SigninPoints
	}
	if len(f.Quests) > 0 {
		quests = make([]Quest, 0, len(f.Quests))
		for _, q := range f.Quests {
			quests = append(quests, Quest{Code: domain.QuestCode(q.Code), Title: q.Title, Need: q.Need, Points: q.Points})
		}
	}
	return NewEconomy(ppu, signin, quests)
}

func (e Economy) PointsPerUnit() int64 { return e.pointsPerUnit }

func (e Economy) SigninPoints() int64 { return e.signinPoints }

func (e Economy) Quests() []Quest {
	return append([]Quest(nil), e.quests...)
}

func (e Economy) Quest(code domain.QuestCode) (Quest, bool) {
	for _, q := range e.quests {
		if q.Code == code {
			return q, true
		}
	}
	return Quest{}, false
}
