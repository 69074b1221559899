package ancha_test

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/p4l1ly/ancha"
)

const sessionsYAML = `
- id: 3fa85f64-5717-4562-b3fc-2c963f66afa6
  name: alice
- id: 7c9e6679-7425-40de-944b-e07fc1f90ae7
  name: bob
`

type sessionRecord struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Example demonstrates the engine's calling convention end to end: walk
// the origin once with Reserve to size a buffer, Anchize into it, then
// Deanchize to obtain a ready-to-read view — here, a Map keyed by session
// UUID with variable-length session names as values.
func Example() {
	var records []sessionRecord
	if err := yaml.Unmarshal([]byte(sessionsYAML), &records); err != nil {
		panic(err)
	}

	origin := make([]ancha.MapEntryOrigin[uuid.UUID, string], len(records))
	for i, rec := range records {
		origin[i] = ancha.MapEntryOrigin[uuid.UUID, string]{
			Key:   uuid.MustParse(rec.ID),
			Value: rec.Name,
		}
	}

	strategy := ancha.NewMapStrategy[uuid.UUID, uuid.UUID, string, ancha.Blob](
		ancha.DirectCopy[uuid.UUID]{}, ancha.BlobStrategy{})

	r := ancha.NewReserve()
	strategy.Reserve(origin, nil, r)

	buf := make([]byte, r.Size+r.Align)
	cur := ancha.NewCursor[byte](buf)
	if _, err := strategy.Anchize(origin, nil, cur); err != nil {
		panic(err)
	}

	view := ancha.Transmute[ancha.Map[uuid.UUID, ancha.Blob]](cur)
	strategy.Deanchize(cur)

	m := view.Get()
	if v, ok := m.Get(uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")); ok {
		fmt.Println(v.String())
	}
	// Output:
	// bob
}
