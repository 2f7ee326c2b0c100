package changelog

import (
	"errors"
	"fmt"

	"github.com/chronolog-dev/chronolog/pkg/relver"
)

var (
	ErrVersionNotNewer = errors.New("version is not newer than the latest release")
	ErrDateRegression  = errors.New("date is earlier than the latest release")
	ErrDuplicateEntry  = errors.New("duplicate release version")
)

// Prepend adds a new release record at the top of the document. Published
// records are immutable, so the new release must carry a version newer than
// every existing one and a date no earlier than the latest release's date.
func (c *Changelog) Prepend(rel *Release) error {
	if _, err := relver.Parse(rel.Version); err != nil {
		return err
	}

	for _, existing := range c.Releases {
		if relver.Compare(existing.Version, rel.Version) == 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateEntry, rel.Version)
		}
	}

	if latest := c.Latest(); latest != nil {
		if relver.Compare(rel.Version, latest.Version) <= 0 {
			return fmt.Errorf("%w: %s <= %s", ErrVersionNotNewer, rel.Version, latest.Version)
		}

		if !rel.Date.IsZero() && !latest.Date.IsZero() && rel.Date.Before(latest.Date) {
			return fmt.Errorf("%w: %s < %s", ErrDateRegression,
				rel.Date.Format(CanonicalDateFormat), latest.Date.Format(CanonicalDateFormat))
		}
	}

	c.Releases = append([]*Release{rel}, c.Releases...)

	return nil
}
