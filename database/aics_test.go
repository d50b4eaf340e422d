package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wsm/model"
)

func TestAddAndListAICs(t *testing.T) {
	db := newTestDB(t)

	count, err := AddAIC(db, model.AreaInCharge{ID: 1, FirstName: "A", LastName: "B"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	aics, err := GetAllAICs(db)
	require.NoError(t, err)
	require.Len(t, aics, 1)
	assert.Equal(t, 1, aics[0].ID)
	assert.Equal(t, "A", aics[0].FirstName)
	assert.Nil(t, aics[0].MiddleName)
	assert.Equal(t, "B", aics[0].LastName)
}

func TestAddDuplicateAICLeavesRowIntact(t *testing.T) {
	db := newTestDB(t)
	seedAIC(t, db, 1)

	_, err := AddAIC(db, model.AreaInCharge{ID: 1, FirstName: "Other", LastName: "Name"})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.Contains(t, err.Error(), "already exists")

	aics, err := GetAllAICs(db)
	require.NoError(t, err)
	require.Len(t, aics, 1)
	assert.Equal(t, "Ravi", aics[0].FirstName)
}

func TestSearchAICsByMiddleName(t *testing.T) {
	db := newTestDB(t)
	_, err := AddAIC(db, model.AreaInCharge{ID: 1, FirstName: "Asha", MiddleName: strPtr("Devi"), LastName: "Patel"})
	require.NoError(t, err)
	_, err = AddAIC(db, model.AreaInCharge{ID: 2, FirstName: "Vikram", LastName: "Singh"})
	require.NoError(t, err)

	// Case-insensitive substring over a middle name that matches nothing else.
	matches, err := SearchAICsByName(db, "dEv")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].ID)

	none, err := SearchAICsByName(db, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateAIC(t *testing.T) {
	db := newTestDB(t)
	seedAIC(t, db, 7)

	count, err := UpdateAIC(db, model.AreaInCharge{ID: 7, FirstName: "New", MiddleName: strPtr("Mid"), LastName: "Name"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	aics, err := GetAllAICs(db)
	require.NoError(t, err)
	require.Len(t, aics, 1)
	assert.Equal(t, "New", aics[0].FirstName)
	require.NotNil(t, aics[0].MiddleName)
	assert.Equal(t, "Mid", *aics[0].MiddleName)

	count, err = UpdateAIC(db, model.AreaInCharge{ID: 99, FirstName: "X", LastName: "Y"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestDeleteAICRestrictedBySupervisedArea(t *testing.T) {
	db := newTestDB(t)
	seedAIC(t, db, 1)
	seedArea(t, db, "North", 1)

	_, err := DeleteAIC(db, 1)
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))

	count, err := DeleteArea(db, "North")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, err = DeleteAIC(db, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	aics, err := GetAllAICs(db)
	require.NoError(t, err)
	assert.Empty(t, aics)
}

func TestAddAreaRequiresExistingAIC(t *testing.T) {
	db := newTestDB(t)

	_, err := AddArea(db, model.Area{AreaName: "North", AICID: 42})
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
	assert.Contains(t, err.Error(), "does not exist")

	areas, err := GetAllAreas(db)
	require.NoError(t, err)
	assert.Empty(t, areas)
}

func TestAddAreaTrimsName(t *testing.T) {
	db := newTestDB(t)
	seedAIC(t, db, 1)

	_, err := AddArea(db, model.Area{AreaName: "  North  ", AICID: 1})
	require.NoError(t, err)

	areas, err := GetAllAreas(db)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, "North", areas[0].AreaName)
}

func TestDeleteAreaCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	seedAIC(t, db, 1)
	seedArea(t, db, "North", 1)

	count, err := DeleteArea(db, "nOrTh")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, err = DeleteArea(db, "North")
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestGetAreasByAIC(t *testing.T) {
	db := newTestDB(t)
	seedAIC(t, db, 1)
	seedAIC(t, db, 2)
	seedArea(t, db, "banana", 1)
	seedArea(t, db, "Apple", 1)
	seedArea(t, db, "Cherry", 2)

	areas, err := GetAreasByAIC(db, 1)
	require.NoError(t, err)
	require.Len(t, areas, 2)
	// Ordered case-insensitively by name.
	assert.Equal(t, "Apple", areas[0].AreaName)
	assert.Equal(t, "banana", areas[1].AreaName)
}
