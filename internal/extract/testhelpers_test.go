package extract

import "fmt"

// literal renders one marker entry the way the map page embeds it.
func literal(lat, lng, name, slug string) string {
	return fmt.Sprintf(`{latLng:[%s,%s], options:{icon: "/img/ramp.png"}, data:"<span class='infoText'>%s<br><a href='/ramp/%s'>Mer info</a>"}`, lat, lng, name, slug)
}
