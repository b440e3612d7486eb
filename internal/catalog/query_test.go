package catalog

import (
	"slices"
	"strconv"
	"strings"
	"testing"

	"handmade-shop/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categoryNames = []string{"Amigurumi", "Blankets", "Home Decor", "Wearables"}

// genProductViews yields product lists with unique ids in position order and
// a small price range so ties are common
func genProductViews() gopter.Gen {
	item := gopter.CombineGens(
		gen.IntRange(0, 8),
		gen.IntRange(0, len(categoryNames)-1),
		gen.Bool(),
		gen.OneConstOf("Bear", "bunny", "Tote", "Scarf", "Blanket"),
	).Map(func(vals []interface{}) domain.ProductView {
		return domain.ProductView{
			Name:     vals[3].(string),
			Price:    float64(vals[0].(int) * 5),
			Category: categoryNames[vals[1].(int)],
			IsNew:    vals[2].(bool),
		}
	})

	return gen.SliceOf(item).Map(func(products []domain.ProductView) []domain.ProductView {
		for i := range products {
			products[i].ID = strconv.Itoa(i)
		}
		return products
	})
}

func genSortKey() gopter.Gen {
	return gen.OneConstOf(SortFeatured, SortPriceLow, SortPriceHigh, SortNewest)
}

func position(p domain.ProductView) int {
	n, _ := strconv.Atoi(p.ID)
	return n
}

func TestProperty_QueryWithoutFiltersIsIdentity(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("all categories, no search, featured returns input order", prop.ForAll(
		func(products []domain.ProductView) bool {
			got := Query(products, ProductQuery{Category: AllCategories, Sort: SortFeatured})
			return cmp.Equal(products, got, cmpopts.EquateEmpty())
		},
		genProductViews(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_QueryDoesNotMutateInput(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("input slice is unchanged after any query", prop.ForAll(
		func(products []domain.ProductView, sort SortKey) bool {
			before := slices.Clone(products)
			Query(products, ProductQuery{Category: AllCategories, Sort: sort})
			return cmp.Equal(before, products, cmpopts.EquateEmpty())
		},
		genProductViews(),
		genSortKey(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_SortsAreStable(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("ordered by key, ties keep source order", prop.ForAll(
		func(products []domain.ProductView, sort SortKey) bool {
			got := Query(products, ProductQuery{Sort: sort})
			if len(got) != len(products) {
				return false
			}

			key := func(p domain.ProductView) float64 {
				switch sort {
				case SortPriceLow:
					return p.Price
				case SortPriceHigh:
					return -p.Price
				case SortNewest:
					return float64(newRank(p))
				default:
					return 0
				}
			}

			for i := 1; i < len(got); i++ {
				prev, cur := key(got[i-1]), key(got[i])
				if prev > cur {
					return false
				}
				if prev == cur && position(got[i-1]) > position(got[i]) {
					return false
				}
			}
			return true
		},
		genProductViews(),
		genSortKey(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_CategoryFilterIsExact(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("results are exactly the products in the category", prop.ForAll(
		func(products []domain.ProductView, pick int) bool {
			slug := Slugify(categoryNames[pick])
			got := Query(products, ProductQuery{Category: slug, Sort: SortFeatured})

			want := 0
			for _, p := range products {
				if Slugify(p.Category) == slug {
					want++
				}
			}
			if len(got) != want {
				return false
			}
			for _, p := range got {
				if Slugify(p.Category) != slug {
					return false
				}
			}
			return true
		},
		genProductViews(),
		gen.IntRange(0, len(categoryNames)-1),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_SearchIgnoresCase(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("upper and lower case searches agree", prop.ForAll(
		func(products []domain.ProductView, term string) bool {
			upper := Query(products, ProductQuery{Search: strings.ToUpper(term)})
			lower := Query(products, ProductQuery{Search: strings.ToLower(term)})
			return cmp.Equal(upper, lower, cmpopts.EquateEmpty())
		},
		genProductViews(),
		gen.OneConstOf("bear", "BEAR", "Bu", "decor", "x"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestQuery_Storefront(t *testing.T) {
	products, _ := storefront(t)

	tests := []struct {
		name  string
		query ProductQuery
		want  []string
	}{
		{"search bear", ProductQuery{Category: AllCategories, Search: "Bear"}, []string{"1"}},
		{"search upper bear", ProductQuery{Search: "BEAR"}, []string{"1"}},
		{"search tote", ProductQuery{Search: "tote"}, []string{"3"}},
		{"search matches category", ProductQuery{Search: "home decor"}, []string{"5", "8", "11"}},
		{"category", ProductQuery{Category: "home-decor"}, []string{"5", "8", "11"}},
		{"category price low", ProductQuery{Category: "amigurumi", Sort: SortPriceLow}, []string{"6", "1", "10"}},
		{"price high keeps ties", ProductQuery{Sort: SortPriceHigh}, []string{"7", "2", "12", "11", "9", "3", "10", "1", "8", "4", "6", "5"}},
		{"newest", ProductQuery{Sort: SortNewest}, []string{"1", "3", "7", "11", "2", "4", "5", "6", "8", "9", "10", "12"}},
		{"no match", ProductQuery{Search: "dragon"}, []string{}},
		{"unknown category", ProductQuery{Category: "toys"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Query(products, tt.query)
			if diff := cmp.Diff(tt.want, productIDs(got)); diff != "" {
				t.Errorf("Query() ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortPriceLow, ParseSortKey("price-low"))
	assert.Equal(t, SortPriceHigh, ParseSortKey("price-high"))
	assert.Equal(t, SortNewest, ParseSortKey("newest"))
	assert.Equal(t, SortFeatured, ParseSortKey("featured"))
	assert.Equal(t, SortFeatured, ParseSortKey("cheapest"))
	assert.Equal(t, SortFeatured, ParseSortKey(""))
}

func TestQueryBlog(t *testing.T) {
	_, posts := storefront(t)

	t.Run("no filter promotes first post", func(t *testing.T) {
		got := QueryBlog(posts, BlogQuery{Category: AllCategories})
		require.NotNil(t, got.Featured)
		assert.Equal(t, "1", got.Featured.ID)
		assert.Equal(t, []string{"2", "3", "4", "5", "6"}, postIDs(got.Posts))
	})

	t.Run("category matches display name slug", func(t *testing.T) {
		got := QueryBlog(posts, BlogQuery{Category: "tutorial"})
		assert.Nil(t, got.Featured)
		assert.Equal(t, []string{"1", "4"}, postIDs(got.Posts))
	})

	t.Run("category given as display name", func(t *testing.T) {
		got := QueryBlog(posts, BlogQuery{Category: "Tips & Tricks"})
		assert.Equal(t, []string{"2"}, postIDs(got.Posts))
	})

	t.Run("search covers title and excerpt", func(t *testing.T) {
		got := QueryBlog(posts, BlogQuery{Search: "YARN"})
		assert.Nil(t, got.Featured)
		assert.Equal(t, []string{"3"}, postIDs(got.Posts))

		got = QueryBlog(posts, BlogQuery{Search: "cold months"})
		assert.Equal(t, []string{"6"}, postIDs(got.Posts))
	})

	t.Run("empty input", func(t *testing.T) {
		got := QueryBlog(nil, BlogQuery{})
		assert.Nil(t, got.Featured)
		assert.Empty(t, got.Posts)
	})
}

func TestFindProductAndRelated(t *testing.T) {
	products, _ := storefront(t)

	bear, ok := FindProduct(products, "1")
	require.True(t, ok)
	assert.Equal(t, "Cute Bear Amigurumi", bear.Name)

	_, ok = FindProduct(products, "999")
	assert.False(t, ok)

	assert.Equal(t, []string{"6", "10"}, productIDs(Related(products, bear, 4)))
	assert.Equal(t, []string{"6"}, productIDs(Related(products, bear, 1)))
	assert.Empty(t, Related(products, bear, 0))
}

func TestFeatured(t *testing.T) {
	products, _ := storefront(t)

	featured := Featured(products, 4)
	assert.Equal(t, []string{"1", "2", "3", "4"}, productIDs(featured))

	featured[0].Name = "changed"
	assert.Equal(t, "Cute Bear Amigurumi", products[0].Name)

	assert.Len(t, Featured(products, 100), len(products))
	assert.Empty(t, Featured(products, -1))
}
