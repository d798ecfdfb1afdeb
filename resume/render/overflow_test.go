package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckOverflowWithinLimits(t *testing.T) {
	assert.Empty(t, CheckOverflow(janeSmith()))
}

func TestCheckOverflowReportsSoftLimits(t *testing.T) {
	record := janeSmith()
	bullets := make([]string, MaxBulletsPerEntry+1)
	for i := range bullets {
		bullets[i] = "Delivered"
	}
	bullets[2] = strings.Repeat("x", MaxBulletRunes+1)
	record.Experience[0].Bullets = bullets

	warnings := CheckOverflow(record)

	require.Len(t, warnings, 2)
	assert.Equal(t, "experience[0].bullets", warnings[0].Field)
	assert.Equal(t, MaxBulletsPerEntry, warnings[0].Limit)
	assert.Equal(t, MaxBulletsPerEntry+1, warnings[0].Actual)
	assert.Equal(t, "experience[0].bullets[2]", warnings[1].Field)
	assert.Contains(t, warnings[1].String(), "recommended at most 300")
}

func TestCheckOverflowDoesNotBlockRendering(t *testing.T) {
	record := janeSmith()
	for i := 0; i <= MaxSkills; i++ {
		record.TechnicalSkills = append(record.TechnicalSkills, "Skill")
	}

	require.NotEmpty(t, CheckOverflow(record))
	_, err := RenderToFile(record, t.TempDir()+"/many.docx")
	assert.NoError(t, err)
}
