package vissim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRouting(t *testing.T) {
	doc := loadNetwork(t)
	routing := NewStaticRouting(doc)

	attrs, err := routing.GetRouting("link", 1)
	require.NoError(t, err)
	assert.Equal(t, "1", attrs["no"])
	assert.Equal(t, "10.0000", attrs["pos"])

	_, err = routing.GetRouting("vehClasses", 10)
	require.ErrorIs(t, err, ErrInvalidAttribute)

	classes, err := routing.GetVehicleClasses(1)
	require.NoError(t, err)
	assert.Equal(t, []Attributes{{"key": "10"}}, classes)
}

func TestCreateRoutingAllocatesOwnNumbers(t *testing.T) {
	doc := loadNetwork(t)
	routing := NewStaticRouting(doc)

	routingNo, err := routing.CreateRouting(3, nil)
	require.NoError(t, err)
	// Next after existing decision 1, links catalog plays no role
	assert.Equal(t, 2, routingNo)

	attrs, err := routing.GetRouting("no", routingNo)
	require.NoError(t, err)
	assert.Equal(t, "3", attrs["link"])
	assert.Equal(t, "0.0000", attrs["pos"])
	_, ok := attrs["vehClasses"]
	assert.False(t, ok)

	classes, err := routing.GetVehicleClasses(routingNo)
	require.NoError(t, err)
	assert.Equal(t, []Attributes{{"key": "10"}}, classes)

	routes, err := routing.GetRoutes(routingNo)
	require.NoError(t, err)
	assert.Empty(t, routes)

	other, err := routing.CreateRouting(2, Values{"vehClasses": []int{10, 20}, "pos": 25.5})
	require.NoError(t, err)
	assert.Equal(t, 3, other)
	classes, err = routing.GetVehicleClasses(other)
	require.NoError(t, err)
	assert.Equal(t, []Attributes{{"key": "10"}, {"key": "20"}}, classes)
}

func TestCreateRoutingAllVehTypes(t *testing.T) {
	doc, err := LoadFrom(strings.NewReader(`<network><vehicleRoutingDecisionsStatic/></network>`))
	require.NoError(t, err)
	routing := NewStaticRouting(doc)

	_, err = routing.CreateRouting(1, nil)
	require.ErrorIs(t, err, ErrEmptyCatalog)

	routingNo, err := routing.CreateRouting(1, Values{"allVehTypes": true})
	require.NoError(t, err)
	assert.Equal(t, 1, routingNo)
	classes, err := routing.GetVehicleClasses(routingNo)
	require.NoError(t, err)
	assert.Empty(t, classes)

	_, err = routing.CreateRouting(1, Values{"vehClasses": 10})
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestRoutes(t *testing.T) {
	doc := loadNetwork(t)
	routing := NewStaticRouting(doc)

	route, err := routing.GetRoute(1, "destLink", 2)
	require.NoError(t, err)
	assert.Equal(t, "East", route["name"])

	_, err = routing.GetRoute(1, "linkSeq", 10000)
	require.ErrorIs(t, err, ErrInvalidAttribute)

	seq, err := routing.GetRouteSeq(1, 1)
	require.NoError(t, err)
	assert.Equal(t, []Attributes{{"key": "10000"}}, seq)

	routeNo, err := routing.CreateRoute(1, 3, Values{"linkSeq": []int{10001}, "relFlow": "2 0:1"})
	require.NoError(t, err)
	assert.Equal(t, 2, routeNo)

	route, err = routing.GetRoute(1, "no", routeNo)
	require.NoError(t, err)
	assert.Equal(t, Attributes{"destLink": "3", "destPos": "0.000", "name": "", "no": "2", "relFlow": "2 0:1"}, route)

	require.NoError(t, routing.SetRouteSeq(1, routeNo, []int{3, 10002}))
	seq, err = routing.GetRouteSeq(1, routeNo)
	require.NoError(t, err)
	assert.Equal(t, []Attributes{{"key": "10001"}, {"key": "3"}, {"key": "10002"}}, seq)

	require.NoError(t, routing.SetRoute(1, routeNo, "relFlow", "1 0:1"))
	require.ErrorIs(t, routing.SetRoute(1, routeNo, "destPos", "far"), ErrTypeMismatch)
	require.ErrorIs(t, routing.SetRoute(1, routeNo, "color", "red"), ErrUnknownAttribute)

	require.NoError(t, routing.RemoveRoute(1, 1))
	_, err = routing.GetRoute(1, "no", 1)
	require.ErrorIs(t, err, ErrNotFound)

	// Numbers restart per decision
	routingNo, err := routing.CreateRouting(2, nil)
	require.NoError(t, err)
	routeNo, err = routing.CreateRoute(routingNo, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, routeNo)

	_, err = routing.CreateRoute(404, 4, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSetRoutingAndRemove(t *testing.T) {
	doc := loadNetwork(t)
	routing := NewStaticRouting(doc)

	require.NoError(t, routing.SetRouting(1, "pos", 12.5))
	attrs, err := routing.GetRouting("no", 1)
	require.NoError(t, err)
	assert.Equal(t, "12.5", attrs["pos"])

	require.NoError(t, routing.SetVehicleClasses(1, []int{20}))
	classes, err := routing.GetVehicleClasses(1)
	require.NoError(t, err)
	assert.Len(t, classes, 2)

	require.NoError(t, routing.RemoveRouting(1))
	assert.Empty(t, routing.List())
	_, err = routing.GetRouteSeq(1, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRouteRelativeFlow(t *testing.T) {
	doc := loadNetwork(t)
	routing := NewStaticRouting(doc)

	// Relative flow is a time interval mapping, not a scalar
	require.NoError(t, routing.SetRoute(1, 1, "relFlow", "2 0:1"))
	route, err := routing.GetRoute(1, "no", 1)
	require.NoError(t, err)
	assert.Equal(t, "2 0:1", route["relFlow"])
	require.NoError(t, routing.SetRoute(1, 1, "relFlow", ""))
	require.ErrorIs(t, routing.SetRoute(1, 1, "relFlow", 0.5), ErrTypeMismatch)

	tests := []struct {
		name    string
		relFlow interface{}
		want    string
	}{
		{"default", nil, ""},
		{"empty", "", ""},
		{"interval", "2 0:1", "2 0:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overrides := Values{}
			if tt.relFlow != nil {
				overrides["relFlow"] = tt.relFlow
			}
			routeNo, err := routing.CreateRoute(1, 2, overrides)
			require.NoError(t, err)
			route, err := routing.GetRoute(1, "no", routeNo)
			require.NoError(t, err)
			assert.Equal(t, tt.want, route["relFlow"])
		})
	}
}
