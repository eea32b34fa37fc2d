package resolve

import (
	"strings"

	"github.com/sells-group/lead-resolver/internal/match"
	"github.com/sells-group/lead-resolver/pkg/places"
)

// metros maps "city|ST" to a downtown coordinate for major US metros.
var metros = map[string]places.LatLng{
	"new york|NY":       {Latitude: 40.7128, Longitude: -74.0060},
	"brooklyn|NY":       {Latitude: 40.6782, Longitude: -73.9442},
	"los angeles|CA":    {Latitude: 34.0522, Longitude: -118.2437},
	"chicago|IL":        {Latitude: 41.8781, Longitude: -87.6298},
	"houston|TX":        {Latitude: 29.7604, Longitude: -95.3698},
	"phoenix|AZ":        {Latitude: 33.4484, Longitude: -112.0740},
	"philadelphia|PA":   {Latitude: 39.9526, Longitude: -75.1652},
	"san antonio|TX":    {Latitude: 29.4241, Longitude: -98.4936},
	"san diego|CA":      {Latitude: 32.7157, Longitude: -117.1611},
	"dallas|TX":         {Latitude: 32.7767, Longitude: -96.7970},
	"fort worth|TX":     {Latitude: 32.7555, Longitude: -97.3308},
	"austin|TX":         {Latitude: 30.2672, Longitude: -97.7431},
	"san jose|CA":       {Latitude: 37.3382, Longitude: -121.8863},
	"san francisco|CA":  {Latitude: 37.7749, Longitude: -122.4194},
	"sacramento|CA":     {Latitude: 38.5816, Longitude: -121.4944},
	"jacksonville|FL":   {Latitude: 30.3322, Longitude: -81.6557},
	"miami|FL":          {Latitude: 25.7617, Longitude: -80.1918},
	"tampa|FL":          {Latitude: 27.9506, Longitude: -82.4572},
	"orlando|FL":        {Latitude: 28.5383, Longitude: -81.3792},
	"columbus|OH":       {Latitude: 39.9612, Longitude: -82.9988},
	"cleveland|OH":      {Latitude: 41.4993, Longitude: -81.6944},
	"cincinnati|OH":     {Latitude: 39.1031, Longitude: -84.5120},
	"indianapolis|IN":   {Latitude: 39.7684, Longitude: -86.1581},
	"charlotte|NC":      {Latitude: 35.2271, Longitude: -80.8431},
	"raleigh|NC":        {Latitude: 35.7796, Longitude: -78.6382},
	"seattle|WA":        {Latitude: 47.6062, Longitude: -122.3321},
	"portland|OR":       {Latitude: 45.5152, Longitude: -122.6784},
	"denver|CO":         {Latitude: 39.7392, Longitude: -104.9903},
	"washington|DC":     {Latitude: 38.9072, Longitude: -77.0369},
	"boston|MA":         {Latitude: 42.3601, Longitude: -71.0589},
	"nashville|TN":      {Latitude: 36.1627, Longitude: -86.7816},
	"memphis|TN":        {Latitude: 35.1495, Longitude: -90.0490},
	"detroit|MI":        {Latitude: 42.3314, Longitude: -83.0458},
	"oklahoma city|OK":  {Latitude: 35.4676, Longitude: -97.5164},
	"las vegas|NV":      {Latitude: 36.1699, Longitude: -115.1398},
	"louisville|KY":     {Latitude: 38.2527, Longitude: -85.7585},
	"baltimore|MD":      {Latitude: 39.2904, Longitude: -76.6122},
	"milwaukee|WI":      {Latitude: 43.0389, Longitude: -87.9065},
	"albuquerque|NM":    {Latitude: 35.0844, Longitude: -106.6504},
	"tucson|AZ":         {Latitude: 32.2226, Longitude: -110.9747},
	"kansas city|MO":    {Latitude: 39.0997, Longitude: -94.5786},
	"atlanta|GA":        {Latitude: 33.7490, Longitude: -84.3880},
	"minneapolis|MN":    {Latitude: 44.9778, Longitude: -93.2650},
	"new orleans|LA":    {Latitude: 29.9511, Longitude: -90.0715},
	"st louis|MO":       {Latitude: 38.6270, Longitude: -90.1994},
	"pittsburgh|PA":     {Latitude: 40.4406, Longitude: -79.9959},
	"salt lake city|UT": {Latitude: 40.7608, Longitude: -111.8910},
	"richmond|VA":       {Latitude: 37.5407, Longitude: -77.4360},
	"birmingham|AL":     {Latitude: 33.5186, Longitude: -86.8104},
	"omaha|NE":          {Latitude: 41.2565, Longitude: -95.9345},
	"el paso|TX":        {Latitude: 31.7619, Longitude: -106.4850},
	"honolulu|HI":       {Latitude: 21.3069, Longitude: -157.8583},
}

// LookupMetro returns the coordinate for a known metro. Matching ignores
// case, periods and "Saint"/"St" spelling; the state may be a name or an
// abbreviation.
func LookupMetro(city, state string) (places.LatLng, bool) {
	st := match.NormalizeState(state)
	if st == "" {
		return places.LatLng{}, false
	}
	c := strings.ToLower(strings.TrimSpace(city))
	c = strings.NewReplacer(".", "", "saint ", "st ").Replace(c)
	c = strings.Join(strings.Fields(c), " ")
	if c == "" {
		return places.LatLng{}, false
	}
	ll, ok := metros[c+"|"+st]
	return ll, ok
}
