package params

import (
	"reflect"
	"testing"
)

func TestSet_KeepsFirstPosition(t *testing.T) {
	p := New()
	p.Set(Query, "*:*")
	p.Set(Rows, 10)
	p.Set(Query, "paris")

	if got := p.Names(); !reflect.DeepEqual(got, []string{"q", "rows"}) {
		t.Errorf("Names() = %v", got)
	}
	if p.String(Query) != "paris" {
		t.Errorf("String(q) = %q", p.String(Query))
	}
}

func TestSort_UnsetIsEmpty(t *testing.T) {
	p := New()
	if p.Sort() != "" {
		t.Errorf("Sort() = %q, want empty", p.Sort())
	}
	p.Set(Sort, "price asc")
	if p.Sort() != "price asc" {
		t.Errorf("Sort() = %q", p.Sort())
	}
}

func TestFilterQueries_AppendOrder(t *testing.T) {
	p := New()
	p.AddFilterQuery("a:1")
	p.Set(FilterQuery, "b:2")
	p.AddFilterQuery("c:3")

	want := []string{"a:1", "b:2", "c:3"}
	if got := p.FilterQueries(); !reflect.DeepEqual(got, want) {
		t.Errorf("FilterQueries() = %v, want %v", got, want)
	}
	if p.Has(FilterQuery) {
		t.Error("fq must not be stored as a scalar")
	}
}

func TestFilterQueries_ReturnsCopy(t *testing.T) {
	p := New()
	p.AddFilterQuery("a:1")
	fq := p.FilterQueries()
	fq[0] = "mutated"
	if p.FilterQueries()[0] != "a:1" {
		t.Error("FilterQueries() leaked internal slice")
	}
}

func TestString_FormatsNumbers(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"float whole", 1.0, "1"},
		{"float fraction", 2.5, "2.5"},
		{"int", 20, "20"},
		{"string", "x", "x"},
		{"small float", 0.0001, "0.0001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			p.Set("k", tt.value)
			if got := p.String("k"); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClone_Independent(t *testing.T) {
	p := New()
	p.Set(Sort, "price asc")
	p.AddFilterQuery("a:1")

	c := p.Clone()
	c.Set(Sort, "geodist() asc")
	c.AddFilterQuery("b:2")

	if p.Sort() != "price asc" {
		t.Errorf("original sort changed: %q", p.Sort())
	}
	if len(p.FilterQueries()) != 1 {
		t.Errorf("original fq changed: %v", p.FilterQueries())
	}
	if p.Len() != 2 || c.Len() != 3 {
		t.Errorf("Len() = %d / %d", p.Len(), c.Len())
	}
}

func TestEncode_GeodistShape(t *testing.T) {
	p := New()
	p.Set(Query, "*:*")
	p.Set(SpatialField, "attr_location_gpt")
	p.Set(Point, "1.738281,46.75984")
	p.Set(Sort, "geodist() asc,")
	p.Set(Distance, 1.0)
	p.AddFilterQuery("{!geofilt sfield=attr_location_gpt}")

	want := "q=%2A%3A%2A&sfield=attr_location_gpt&pt=1.738281%2C46.75984" +
		"&sort=geodist%28%29+asc%2C&d=1&fq=%7B%21geofilt+sfield%3Dattr_location_gpt%7D"
	if got := p.Encode(); got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestValues_MultipleFilterQueries(t *testing.T) {
	p := New()
	p.Set(Rows, 10)
	p.AddFilterQuery("a:1")
	p.AddFilterQuery("b:2")

	v := p.Values()
	if v.Get(Rows) != "10" {
		t.Errorf("rows = %q", v.Get(Rows))
	}
	if got := v[FilterQuery]; !reflect.DeepEqual(got, []string{"a:1", "b:2"}) {
		t.Errorf("fq = %v", got)
	}
}

func TestScalars(t *testing.T) {
	p := New()
	p.Set(Distance, 2.5)
	p.Set(Query, "x")
	got := p.Scalars()
	if got[Distance] != "2.5" || got[Query] != "x" || len(got) != 2 {
		t.Errorf("Scalars() = %v", got)
	}
}
