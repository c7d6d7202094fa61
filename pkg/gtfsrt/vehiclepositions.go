package gtfsrt

import (
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/travigo/busradar/pkg/arrivals"
	"github.com/travigo/busradar/pkg/transit"
	"google.golang.org/protobuf/proto"
)

const ContentType = "application/x-protobuf"

// BuildVehiclePositions exports the live snapshot as a full GTFS-Realtime dataset.
// Route ids are only attached when the route code is known rather than guessed.
func BuildVehiclePositions(vehicles []*transit.Vehicle, resolver arrivals.Resolver, now time.Time) *gtfs.FeedMessage {
	incrementality := gtfs.FeedHeader_FULL_DATASET
	timestamp := uint64(now.Unix())

	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Incrementality:      &incrementality,
			Timestamp:           proto.Uint64(timestamp),
		},
		Entity: make([]*gtfs.FeedEntity, 0, len(vehicles)),
	}

	for _, vehicle := range vehicles {
		descriptor := &gtfs.VehicleDescriptor{
			Id:    proto.String(vehicle.DoorNumber),
			Label: proto.String(vehicle.DoorNumber),
		}
		if vehicle.Plate != "" {
			descriptor.LicensePlate = proto.String(vehicle.Plate)
		}

		position := &gtfs.VehiclePosition{
			Vehicle: descriptor,
			Position: &gtfs.Position{
				Latitude:  proto.Float32(float32(vehicle.Latitude)),
				Longitude: proto.Float32(float32(vehicle.Longitude)),
				Speed:     proto.Float32(float32(vehicle.Speed / 3.6)),
			},
			Timestamp: proto.Uint64(timestamp),
		}

		if resolver != nil {
			if resolution := resolver.Resolve(vehicle.DoorNumber); resolution.Confident {
				position.Trip = &gtfs.TripDescriptor{
					RouteId: proto.String(resolution.RouteCode),
				}
			}
		}

		feed.Entity = append(feed.Entity, &gtfs.FeedEntity{
			Id:      proto.String(vehicle.DoorNumber),
			Vehicle: position,
		})
	}

	return feed
}

func Marshal(feed *gtfs.FeedMessage) ([]byte, error) {
	return proto.Marshal(feed)
}
