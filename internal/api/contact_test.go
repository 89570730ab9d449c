package api

import (
	"fmt"
	"net/http"
	"testing"

	"contact_api/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContact(t *testing.T) {
	r, _ := setupTest(t)
	token := registerAndLogin(t, r, "alice", "secret")

	w := doRequest(t, r, http.MethodPost, "/api/contacts", token, gin.H{
		"first_name": "John",
		"last_name":  "Doe",
		"email":      "john@example.com",
		"phone":      "080900001",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.NotZero(t, data["id"])
	assert.Equal(t, "John", data["first_name"])
	assert.Equal(t, "Doe", data["last_name"])
	assert.Equal(t, "john@example.com", data["email"])
	assert.Equal(t, "080900001", data["phone"])
}

func TestCreateContactInvalid(t *testing.T) {
	r, _ := setupTest(t)
	token := registerAndLogin(t, r, "alice", "secret")

	w := doRequest(t, r, http.MethodPost, "/api/contacts", token, gin.H{
		"first_name": "",
		"email":      "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := decodeBody(t, w)["errors"].(map[string]any)
	assert.Contains(t, errs, "first_name")
	assert.Contains(t, errs, "email")
}

func TestGetContact(t *testing.T) {
	r, database := setupTest(t)
	token := registerAndLogin(t, r, "alice", "secret")
	ids := seedContacts(t, database, "alice", 1)

	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/contacts/%d", ids[0]), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "First0", data["first_name"])
}

func TestGetContactNotOwned(t *testing.T) {
	r, database := setupTest(t)
	registerAndLogin(t, r, "alice", "secret")
	bobToken := registerAndLogin(t, r, "bob", "secret")
	aliceIDs := seedContacts(t, database, "alice", 1)

	// A foreign contact id is indistinguishable from a missing one
	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/contacts/%d", aliceIDs[0]), bobToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/contacts/99999", bobToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/contacts/notanumber", bobToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateContact(t *testing.T) {
	r, database := setupTest(t)
	token := registerAndLogin(t, r, "alice", "secret")
	ids := seedContacts(t, database, "alice", 1)

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/contacts/%d", ids[0]), token, gin.H{
		"first_name": "Jane",
		"last_name":  "Smith",
		"email":      "jane@example.com",
		"phone":      "080900099",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "Jane", data["first_name"])

	var contact domain.Contact
	require.NoError(t, database.First(&contact, ids[0]).Error)
	assert.Equal(t, "Jane", contact.FirstName)
	assert.Equal(t, "Smith", contact.LastName)
	assert.Equal(t, "alice", contact.Username)
}

func TestUpdateContactNotOwned(t *testing.T) {
	r, database := setupTest(t)
	registerAndLogin(t, r, "alice", "secret")
	bobToken := registerAndLogin(t, r, "bob", "secret")
	aliceIDs := seedContacts(t, database, "alice", 1)

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/contacts/%d", aliceIDs[0]), bobToken, gin.H{
		"first_name": "Hijacked",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	// The row is untouched
	var contact domain.Contact
	require.NoError(t, database.First(&contact, aliceIDs[0]).Error)
	assert.Equal(t, "First0", contact.FirstName)
}

func TestDeleteContactCascadesAddresses(t *testing.T) {
	r, database := setupTest(t)
	token := registerAndLogin(t, r, "alice", "secret")
	ids := seedContacts(t, database, "alice", 1)

	for i := 0; i < 2; i++ {
		require.NoError(t, database.Create(&domain.Address{
			ContactID: ids[0],
			Street:    fmt.Sprintf("Street %d", i),
		}).Error)
	}

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/contacts/%d", ids[0]), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", decodeBody(t, w)["data"])

	var contacts, addresses int64
	require.NoError(t, database.Model(&domain.Contact{}).Count(&contacts).Error)
	require.NoError(t, database.Model(&domain.Address{}).Count(&addresses).Error)
	assert.Zero(t, contacts)
	assert.Zero(t, addresses)
}

func TestDeleteContactNotOwned(t *testing.T) {
	r, database := setupTest(t)
	registerAndLogin(t, r, "alice", "secret")
	bobToken := registerAndLogin(t, r, "bob", "secret")
	aliceIDs := seedContacts(t, database, "alice", 1)

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/contacts/%d", aliceIDs[0]), bobToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var total int64
	require.NoError(t, database.Model(&domain.Contact{}).Count(&total).Error)
	assert.EqualValues(t, 1, total)
}

func TestSearchPagination(t *testing.T) {
	r, database := setupTest(t)
	token := registerAndLogin(t, r, "alice", "secret")
	seedContacts(t, database, "alice", 15)

	w := doRequest(t, r, http.MethodGet, "/api/contacts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["data"], 10)
	paging := body["paging"].(map[string]any)
	assert.EqualValues(t, 1, paging["page"])
	assert.EqualValues(t, 2, paging["total_page"])
	assert.EqualValues(t, 15, paging["total_item"])

	w = doRequest(t, r, http.MethodGet, "/api/contacts?page=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Len(t, body["data"], 5)
	paging = body["paging"].(map[string]any)
	assert.EqualValues(t, 2, paging["page"])
	assert.EqualValues(t, 2, paging["total_page"])
	assert.EqualValues(t, 15, paging["total_item"])
}

func TestSearchDeterministicOrder(t *testing.T) {
	r, database := setupTest(t)
	token := registerAndLogin(t, r, "alice", "secret")
	ids := seedContacts(t, database, "alice", 15)

	w := doRequest(t, r, http.MethodGet, "/api/contacts?size=100", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]any)
	require.Len(t, data, 15)
	for i, item := range data {
		assert.EqualValues(t, ids[i], item.(map[string]any)["id"])
	}
}

func TestSearchByName(t *testing.T) {
	r, database := setupTest(t)
	token := registerAndLogin(t, r, "alice", "secret")
	seedContacts(t, database, "alice", 15)

	// First1, First10..First14 out of First0..First14: six matches, case-insensitive
	w := doRequest(t, r, http.MethodGet, "/api/contacts?name=FIRST1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["data"], 6)
	paging := body["paging"].(map[string]any)
	assert.EqualValues(t, 1, paging["total_page"])
	assert.EqualValues(t, 6, paging["total_item"])
}

func TestSearchNameSpansFullName(t *testing.T) {
	r, database := setupTest(t)
	token := registerAndLogin(t, r, "alice", "secret")
	require.NoError(t, database.Create(&domain.Contact{
		Username:  "alice",
		FirstName: "John",
		LastName:  "Doe",
	}).Error)

	// The needle crosses the first/last name boundary
	w := doRequest(t, r, http.MethodGet, "/api/contacts?name=hn+do", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 1)
}

func TestSearchByEmailAndPhone(t *testing.T) {
	r, database := setupTest(t)
	token := registerAndLogin(t, r, "alice", "secret")
	seedContacts(t, database, "alice", 15)

	w := doRequest(t, r, http.MethodGet, "/api/contacts?email=contact1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	// contact1, contact10..contact14
	assert.EqualValues(t, 6, body["paging"].(map[string]any)["total_item"])

	// Phones are 0809000000..0809000014, so the full value matches one row
	w = doRequest(t, r, http.MethodGet, "/api/contacts?phone=0809000001", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.EqualValues(t, 1, body["paging"].(map[string]any)["total_item"])
}

func TestSearchFiltersCombine(t *testing.T) {
	r, database := setupTest(t)
	token := registerAndLogin(t, r, "alice", "secret")
	seedContacts(t, database, "alice", 15)

	// name narrows to six, email narrows those to one
	w := doRequest(t, r, http.MethodGet, "/api/contacts?name=First1&email=contact12", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["data"], 1)
	assert.EqualValues(t, 1, body["paging"].(map[string]any)["total_item"])
}

func TestSearchScopedToOwner(t *testing.T) {
	r, database := setupTest(t)
	token := registerAndLogin(t, r, "alice", "secret")
	registerAndLogin(t, r, "bob", "secret")
	seedContacts(t, database, "bob", 5)

	w := doRequest(t, r, http.MethodGet, "/api/contacts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Empty(t, body["data"])
	assert.EqualValues(t, 0, body["paging"].(map[string]any)["total_item"])
}

func TestSearchInvalidPaging(t *testing.T) {
	r, _ := setupTest(t)
	token := registerAndLogin(t, r, "alice", "secret")

	for _, query := range []string{"page=0", "size=0", "size=101", "page=abc"} {
		w := doRequest(t, r, http.MethodGet, "/api/contacts?"+query, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestContactRoutesRequireAuth(t *testing.T) {
	r, _ := setupTest(t)

	w := doRequest(t, r, http.MethodGet, "/api/contacts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/contacts", "bogus", gin.H{"first_name": "X"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
