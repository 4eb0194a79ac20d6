// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package region

import "github.com/wneessen/wxmaps/internal/geo"

type area struct {
	name   string
	bounds geo.Bounds
}

// nationalBounds covers the contiguous United States.
var nationalBounds = geo.Bounds{West: -126, East: -66, South: 24, North: 50.5}

var states = map[string]area{
	"US": {"United States", nationalBounds},
	"AL": {"Alabama", geo.Bounds{West: -88.5, East: -84.9, South: 30.1, North: 35.1}},
	"AK": {"Alaska", geo.Bounds{West: -170, East: -130, South: 51, North: 71.5}},
	"AZ": {"Arizona", geo.Bounds{West: -114.9, East: -109, South: 31.3, North: 37.1}},
	"AR": {"Arkansas", geo.Bounds{West: -94.7, East: -89.6, South: 33, North: 36.5}},
	"CA": {"California", geo.Bounds{West: -124.5, East: -114.1, South: 32.5, North: 42.1}},
	"CO": {"Colorado", geo.Bounds{West: -109.1, East: -102, South: 37, North: 41}},
	"CT": {"Connecticut", geo.Bounds{West: -73.8, East: -71.8, South: 40.95, North: 42.1}},
	"DE": {"Delaware", geo.Bounds{West: -75.8, East: -75, South: 38.4, North: 39.9}},
	"FL": {"Florida", geo.Bounds{West: -87.7, East: -80, South: 24.4, North: 31}},
	"GA": {"Georgia", geo.Bounds{West: -85.7, East: -80.8, South: 30.3, North: 35}},
	"HI": {"Hawaii", geo.Bounds{West: -160.3, East: -154.7, South: 18.9, North: 22.3}},
	"ID": {"Idaho", geo.Bounds{West: -117.3, East: -111, South: 42, North: 49}},
	"IL": {"Illinois", geo.Bounds{West: -91.6, East: -87.5, South: 36.9, North: 42.5}},
	"IN": {"Indiana", geo.Bounds{West: -88.1, East: -84.8, South: 37.7, North: 41.8}},
	"IA": {"Iowa", geo.Bounds{West: -96.7, East: -90.1, South: 40.3, North: 43.6}},
	"KS": {"Kansas", geo.Bounds{West: -102.1, East: -94.6, South: 36.9, North: 40}},
	"KY": {"Kentucky", geo.Bounds{West: -89.6, East: -81.9, South: 36.5, North: 39.2}},
	"LA": {"Louisiana", geo.Bounds{West: -94.1, East: -88.8, South: 28.9, North: 33.1}},
	"ME": {"Maine", geo.Bounds{West: -71.1, East: -66.9, South: 43, North: 47.5}},
	"MD": {"Maryland", geo.Bounds{West: -79.5, East: -75, South: 37.9, North: 39.8}},
	"MA": {"Massachusetts", geo.Bounds{West: -73.5, East: -69.9, South: 41.2, North: 42.9}},
	"MI": {"Michigan", geo.Bounds{West: -90.5, East: -82.4, South: 41.7, North: 48.3}},
	"MN": {"Minnesota", geo.Bounds{West: -97.3, East: -89.5, South: 43.5, North: 49.4}},
	"MS": {"Mississippi", geo.Bounds{West: -91.7, East: -88, South: 30.1, North: 35}},
	"MO": {"Missouri", geo.Bounds{West: -95.8, East: -89.1, South: 36, North: 40.6}},
	"MT": {"Montana", geo.Bounds{West: -116.1, East: -104, South: 44.3, North: 49}},
	"NE": {"Nebraska", geo.Bounds{West: -104.1, East: -95.3, South: 40, North: 43}},
	"NV": {"Nevada", geo.Bounds{West: -120, East: -114, South: 35, North: 42}},
	"NH": {"New Hampshire", geo.Bounds{West: -72.6, East: -70.6, South: 42.7, North: 45.3}},
	"NJ": {"New Jersey", geo.Bounds{West: -75.6, East: -73.9, South: 38.9, North: 41.4}},
	"NM": {"New Mexico", geo.Bounds{West: -109.1, East: -103, South: 31.3, North: 37}},
	"NY": {"New York", geo.Bounds{West: -79.8, East: -71.8, South: 40.5, North: 45.1}},
	"NC": {"North Carolina", geo.Bounds{West: -84.4, East: -75.4, South: 33.8, North: 36.6}},
	"ND": {"North Dakota", geo.Bounds{West: -104.1, East: -96.5, South: 45.9, North: 49}},
	"OH": {"Ohio", geo.Bounds{West: -84.9, East: -80.5, South: 38.4, North: 42}},
	"OK": {"Oklahoma", geo.Bounds{West: -103.1, East: -94.4, South: 33.6, North: 37}},
	"OR": {"Oregon", geo.Bounds{West: -124.6, East: -116.4, South: 41.9, North: 46.3}},
	"PA": {"Pennsylvania", geo.Bounds{West: -80.6, East: -74.7, South: 39.7, North: 42.3}},
	"RI": {"Rhode Island", geo.Bounds{West: -71.9, East: -71.1, South: 41.1, North: 42.1}},
	"SC": {"South Carolina", geo.Bounds{West: -83.4, East: -78.5, South: 32, North: 35.3}},
	"SD": {"South Dakota", geo.Bounds{West: -104.1, East: -96.4, South: 42.4, North: 46}},
	"TN": {"Tennessee", geo.Bounds{West: -90.4, East: -81.6, South: 34.9, North: 36.7}},
	"TX": {"Texas", geo.Bounds{West: -106.7, East: -93.5, South: 25.8, North: 36.6}},
	"UT": {"Utah", geo.Bounds{West: -114.1, East: -109, South: 37, North: 42}},
	"VT": {"Vermont", geo.Bounds{West: -73.5, East: -71.4, South: 42.7, North: 45.1}},
	"VA": {"Virginia", geo.Bounds{West: -83.7, East: -75.2, South: 36.5, North: 39.5}},
	"WA": {"Washington", geo.Bounds{West: -124.8, East: -116.9, South: 45.5, North: 49}},
	"WV": {"West Virginia", geo.Bounds{West: -82.7, East: -77.7, South: 37.2, North: 40.7}},
	"WI": {"Wisconsin", geo.Bounds{West: -92.9, East: -86.8, South: 42.4, North: 47.1}},
	"WY": {"Wyoming", geo.Bounds{West: -111.1, East: -104, South: 41, North: 45}},
}

// stateAliases maps alternative spellings to table codes.
var stateAliases = map[string]string{
	"USA":   "US",
	"CONUS": "US",
}

var gaccs = map[string]area{
	"OSCC": {"Southern California", geo.Bounds{West: -122.1, East: -114, South: 32.4, North: 38.9}},
	"ONCC": {"Northern California", geo.Bounds{West: -124.8, East: -119.2, South: 36.9, North: 42.1}},
	"NWCC": {"Northwest", geo.Bounds{West: -124.8, East: -116.4, South: 41.9, North: 49}},
	"GBCC": {"Great Basin", geo.Bounds{West: -120.5, East: -109, South: 35, North: 46}},
	"NRCC": {"Northern Rockies", geo.Bounds{West: -117.3, East: -96.5, South: 42, North: 49.2}},
	"RMCC": {"Rocky Mountain", geo.Bounds{West: -111.1, East: -94.6, South: 36.9, North: 46}},
	"SWCC": {"Southwest", geo.Bounds{West: -115, East: -100, South: 31.2, North: 37.1}},
	"SACC": {"Southern Area", geo.Bounds{West: -106.7, East: -75.2, South: 24.3, North: 39.5}},
	"EACC": {"Eastern Area", geo.Bounds{West: -97.3, East: -66.9, South: 36, North: 49.4}},
	"AICC": {"Alaska", geo.Bounds{West: -170, East: -130, South: 51, North: 71.5}},
}

// gaccAliases accepts the short names used on the national fire situation pages.
var gaccAliases = map[string]string{
	"SOPS": "OSCC",
	"NOPS": "ONCC",
	"NW":   "NWCC",
	"GB":   "GBCC",
	"NR":   "NRCC",
	"RM":   "RMCC",
	"SW":   "SWCC",
	"SA":   "SACC",
	"EA":   "EACC",
	"AK":   "AICC",
}
