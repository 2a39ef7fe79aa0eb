package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/sortnorris/pkg/models"
)

func sampleReport() *models.RunReport {
	report := &models.RunReport{
		RunID:      "run-1",
		SourcePath: "/src",
		TargetPath: "/dst",
		Duration:   1500 * time.Millisecond,
		Status:     models.StatusPartial,
	}
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	report.Record(models.Outcome{
		Candidate:      models.Candidate{Path: "/src/a.txt", Size: 2048, Timestamp: ts, TimestampSource: models.TimestampModification},
		Classification: models.ClassNew,
		Action:         models.ActionMoved,
		Placement:      models.Placement{Directory: "/dst/2024/01/02", Filename: "a.txt"},
	})
	report.Record(models.Outcome{
		Candidate:      models.Candidate{Path: "/src/b.txt", Size: 10},
		Classification: models.ClassDuplicate,
		Action:         models.ActionDeleted,
		Placement:      models.Placement{Directory: "/dst/2024/01/02", Filename: "b.txt"},
	})
	report.Record(models.Outcome{
		Candidate: models.Candidate{Path: "/src/gone.txt"},
		Action:    models.ActionFailed,
		Failure:   &models.Failure{Kind: models.FailureMissing, Message: "File not found"},
	})
	return report
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "human", "json", "progress"} {
		f, err := New(name, nil)
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}
	_, err := New("xml", nil)
	assert.Error(t, err)
}

func TestHumanFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewHumanFormatter(nil)
	require.NoError(t, f.Start(&buf, models.RunConfig{SourcePath: "/src", TargetPath: "/dst", Preview: true}))
	require.NoError(t, f.Progress(models.Outcome{}))
	require.NoError(t, f.Complete(sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "Relocating /src -> /dst (preview")
	assert.Contains(t, out, "Relocation completed in 1.5s")
	assert.Contains(t, out, "Duplicates deleted")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "Status: partial")
	assert.Contains(t, out, "Failures:")
	assert.Contains(t, out, "/src/gone.txt")
	assert.Contains(t, out, "File not found")
	assert.Equal(t, "human", f.Name())
}

func TestHumanFormatter_Error(t *testing.T) {
	var buf bytes.Buffer
	f := NewHumanFormatter(nil)
	require.NoError(t, f.Start(&buf, models.RunConfig{}))
	require.NoError(t, f.Error(errors.New("walk failed")))
	assert.Contains(t, buf.String(), "Error: walk failed")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(nil)
	require.NoError(t, f.Start(&buf, models.RunConfig{}))
	require.NoError(t, f.Complete(sampleReport()))

	var data JSONReportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))

	assert.Equal(t, "run-1", data.RunID)
	assert.Equal(t, "partial", data.Status)
	assert.Equal(t, int64(1500), data.DurationMs)
	assert.Equal(t, 3, data.Stats.Candidates)
	assert.Equal(t, 1, data.Stats.FilesMoved)
	assert.Equal(t, 1, data.Stats.DuplicatesDeleted)
	assert.Equal(t, 1, data.Stats.FilesFailed)
	assert.Equal(t, int64(2048), data.Stats.BytesMoved)
	assert.Equal(t, int64(10), data.Stats.BytesReclaimed)

	require.Len(t, data.Outcomes, 3)
	assert.Equal(t, "/dst/2024/01/02/a.txt", data.Outcomes[0].Target)
	assert.Equal(t, "2024-01-02T03:04:05Z", data.Outcomes[0].Timestamp)
	assert.Equal(t, "mtime", data.Outcomes[0].TimestampFrom)
	assert.Equal(t, "deleted", data.Outcomes[1].Action)
	assert.Equal(t, "File not found", data.Outcomes[2].Error)
	assert.Empty(t, data.Outcomes[2].Target)

	require.Len(t, data.Errors, 1)
	assert.Equal(t, "missing", data.Errors[0].Kind)
}

func TestProgressFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewProgressFormatter(nil)
	require.NoError(t, f.Start(&buf, models.RunConfig{SourcePath: "/src", TargetPath: "/dst"}))

	report := sampleReport()
	for _, o := range report.Outcomes {
		require.NoError(t, f.Progress(o))
	}
	require.NoError(t, f.Complete(report))

	out := buf.String()
	assert.Contains(t, out, "Relocating")
	assert.Contains(t, out, "Status: partial")
	// Progress after completion is ignored
	assert.NoError(t, f.Progress(models.Outcome{}))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "moved a_001.txt", describe(models.Outcome{
		Candidate: models.Candidate{Path: "/src/a.txt"},
		Action:    models.ActionMoved,
		Placement: models.Placement{Directory: "/dst", Filename: "a_001.txt"},
	}))
	assert.Equal(t, "duplicate b.txt", describe(models.Outcome{
		Candidate: models.Candidate{Path: "/src/b.txt"},
		Action:    models.ActionDeleted,
	}))
	assert.Equal(t, "failed c.txt", describe(models.Outcome{
		Candidate: models.Candidate{Path: "/src/c.txt"},
		Failure:   &models.Failure{Kind: models.FailureIO},
	}))
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"x"}, {"y", "z"}}, []columnAlignment{alignLeft, alignRight}, 0)
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "z")
	assert.Empty(t, renderTable(nil, nil, nil, 0))
}
