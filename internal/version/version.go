package version

import (
	"errors"
	"fmt"
	"time"

	"github.com/ChrisWaycott/mini-chalice/pkg/api"
)

// Прошиваются при сборке:
// -ldflags "-X github.com/ChrisWaycott/mini-chalice/internal/version.Date=2026-03-01"
var (
	Date   string // YYYY-MM-DD (UTC)
	Commit string
	Branch string
)

// Protocol растет при несовместимых изменениях pkg/api.
const Protocol = 1

// epoch - день 0 нумерации сборок.
var epoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

var ErrNoDate = errors.New("build date is not set")

// BuildNumber - номер сборки: число дней от epoch до date.
func BuildNumber(date string) (int, error) {
	if date == "" {
		return 0, ErrNoDate
	}

	t, err := time.ParseInLocation(time.DateOnly, date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", date, err)
	}
	if t.Before(epoch) {
		return 0, fmt.Errorf("build date %s is before %s", date, epoch.Format(time.DateOnly))
	}

	return int(t.Sub(epoch).Hours() / 24), nil
}

// Info собирает ответ /version. Локальная сборка без даты помечается как dev.
func Info() api.VersionView {
	view := api.VersionView{
		Protocol: Protocol,
		Date:     Date,
		Commit:   orUnknown(Commit),
		Branch:   orUnknown(Branch),
	}

	n, err := BuildNumber(Date)
	switch {
	case errors.Is(err, ErrNoDate):
		view.Dev = true
	case err != nil:
		view.Error = err.Error()
	default:
		view.Build = n
	}
	return view
}

// Label - строка для лога при старте.
func Label() string {
	v := Info()
	if v.Error != "" {
		return fmt.Sprintf("protocol v%d, build unknown (%s)", v.Protocol, v.Error)
	}
	if v.Dev {
		return fmt.Sprintf("protocol v%d, dev build commit[%s]", v.Protocol, v.Commit)
	}
	return fmt.Sprintf("protocol v%d, build %d (%s) commit[%s] branch[%s]",
		v.Protocol, v.Build, v.Date, v.Commit, v.Branch)
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
