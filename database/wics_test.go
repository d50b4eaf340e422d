package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wsm/model"
)

func TestAddAndListWICs(t *testing.T) {
	db := newTestDB(t)
	seedAIC(t, db, 1)

	count, err := AddWIC(db, model.WorkshopIC{WkICID: 10, FName: "Anil", MName: strPtr("K"), LName: "Shah", Rating: 4, AreaIC: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	wics, err := GetAllWICs(db)
	require.NoError(t, err)
	require.Len(t, wics, 1)
	assert.Equal(t, 10, wics[0].WkICID)
	assert.Equal(t, 4, wics[0].Rating)
	assert.Equal(t, 1, wics[0].AreaIC)
}

func TestAddWICRequiresExistingAIC(t *testing.T) {
	db := newTestDB(t)

	_, err := AddWIC(db, model.WorkshopIC{WkICID: 10, FName: "A", LName: "B", AreaIC: 99})
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
}

func TestUpdateWICToUnknownAIC(t *testing.T) {
	db := newTestDB(t)
	seedAIC(t, db, 1)
	seedWIC(t, db, 10, 1)

	_, err := UpdateWIC(db, model.WorkshopIC{WkICID: 10, FName: "A", LName: "B", AreaIC: 99})
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
	assert.Contains(t, err.Error(), "Cannot update WIC")
}

func TestSearchWICsAcrossNameFields(t *testing.T) {
	db := newTestDB(t)
	seedAIC(t, db, 1)
	_, err := AddWIC(db, model.WorkshopIC{WkICID: 10, FName: "Anil", MName: strPtr("Qrix"), LName: "Shah", AreaIC: 1})
	require.NoError(t, err)
	_, err = AddWIC(db, model.WorkshopIC{WkICID: 11, FName: "Meena", LName: "Rao", AreaIC: 1})
	require.NoError(t, err)

	byMiddle, err := SearchWICsByName(db, "qri")
	require.NoError(t, err)
	require.Len(t, byMiddle, 1)
	assert.Equal(t, 10, byMiddle[0].WkICID)

	byLast, err := SearchWICsByName(db, "RAO")
	require.NoError(t, err)
	require.Len(t, byLast, 1)
	assert.Equal(t, 11, byLast[0].WkICID)
}

func TestDeleteWICRestrictedByManages(t *testing.T) {
	db := newTestDB(t)
	seedAIC(t, db, 1)
	seedArea(t, db, "North", 1)
	seedWorkshop(t, db, 100, "North")
	seedWIC(t, db, 10, 1)

	_, err := AddManagesEntry(db, model.Manages{WkshpID: 100, ICID: 10})
	require.NoError(t, err)

	_, err = DeleteWIC(db, 10)
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))

	count, err := DeleteManagesEntry(db, 100, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, err = DeleteWIC(db, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestAddDuplicateManagesEntry(t *testing.T) {
	db := newTestDB(t)
	seedAIC(t, db, 1)
	seedArea(t, db, "North", 1)
	seedWorkshop(t, db, 100, "North")
	seedWIC(t, db, 10, 1)

	_, err := AddManagesEntry(db, model.Manages{WkshpID: 100, ICID: 10})
	require.NoError(t, err)

	_, err = AddManagesEntry(db, model.Manages{WkshpID: 100, ICID: 10})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.Contains(t, err.Error(), "already manages")
}

func TestAddManagesEntryMissingParents(t *testing.T) {
	db := newTestDB(t)

	_, err := AddManagesEntry(db, model.Manages{WkshpID: 1, ICID: 2})
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
}

func TestManagesFilters(t *testing.T) {
	db := newTestDB(t)
	seedAIC(t, db, 1)
	seedArea(t, db, "North", 1)
	seedWorkshop(t, db, 100, "North")
	seedWorkshop(t, db, 101, "North")
	seedWIC(t, db, 10, 1)
	seedWIC(t, db, 11, 1)

	for _, m := range []model.Manages{{WkshpID: 100, ICID: 10}, {WkshpID: 100, ICID: 11}, {WkshpID: 101, ICID: 10}} {
		_, err := AddManagesEntry(db, m)
		require.NoError(t, err)
	}

	byWorkshop, err := GetManagesByWorkshop(db, 100)
	require.NoError(t, err)
	assert.Len(t, byWorkshop, 2)

	byIC, err := GetManagesByIC(db, 10)
	require.NoError(t, err)
	assert.Len(t, byIC, 2)

	all, err := GetAllManages(db)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTranslateConstraintPassthrough(t *testing.T) {
	plain := errors.New("disk I/O error")
	got := translateConstraint(plain, "unique msg", "fk msg")
	assert.Equal(t, plain, got)
	assert.False(t, IsUniqueViolation(got))
	assert.False(t, IsForeignKeyViolation(got))
}
