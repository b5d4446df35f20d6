package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	c.Request.Host = "api.test"
	return c
}

func TestParse(t *testing.T) {
	p, err := Parse(testContext("/api/offers/"), 6, 100)
	require.NoError(t, err)
	assert.Equal(t, Params{Page: 1, Size: 6}, p)

	p, err = Parse(testContext("/api/offers/?page=3&page_size=500"), 6, 100)
	require.NoError(t, err)
	assert.Equal(t, Params{Page: 3, Size: 100}, p)
	assert.Equal(t, 200, p.Offset())

	p, err = Parse(testContext("/api/offers/?page_size=abc"), 6, 100)
	require.NoError(t, err)
	assert.Equal(t, 6, p.Size)

	_, err = Parse(testContext("/api/offers/?page=zero"), 6, 100)
	assert.ErrorIs(t, err, ErrInvalidPage)

	_, err = Parse(testContext("/api/offers/?page=0"), 6, 100)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestResolve(t *testing.T) {
	c := testContext("/api/offers/?page=4")
	p, err := Parse(c, 2, 10)
	require.NoError(t, err)

	_, err = p.Resolve(c, 6)
	assert.ErrorIs(t, err, ErrInvalidPage)

	c = testContext("/api/offers/?page=last")
	p, err = Parse(c, 2, 10)
	require.NoError(t, err)
	p, err = p.Resolve(c, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Page)

	c = testContext("/api/offers/")
	p, _ = Parse(c, 2, 10)
	p, err = p.Resolve(c, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
}

func TestBuild_Links(t *testing.T) {
	c := testContext("/api/offers/?page=2&search=logo")
	p, err := Parse(c, 2, 10)
	require.NoError(t, err)

	page := Build(c, p, 5, []int{3, 4})

	assert.Equal(t, int64(5), page.Count)
	require.NotNil(t, page.Next)
	assert.Equal(t, "http://api.test/api/offers/?page=3&search=logo", *page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "http://api.test/api/offers/?search=logo", *page.Previous)

	c = testContext("/api/offers/")
	p, _ = Parse(c, 6, 10)
	page = Build[int](c, p, 0, nil)
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)
	assert.Equal(t, []int{}, page.Results)
}
