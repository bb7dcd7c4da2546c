// Package mongo adapts the MongoDB driver's query surface to rxkit
// streams. Queries come back as cold publishers: nothing runs until a
// subscriber attaches, and every subscription executes the query again.
//
// All query semantics (filtering, sorting, projection, limits, time
// bounds) are delegated verbatim to go.mongodb.org/mongo-driver; the
// package adds only the publisher adaptation, lifecycle management, and
// instrumentation.
//
// Typical usage pairs a typed collection with the bridge package:
//
//	db, err := mongo.New(ctx, cfg, log)
//	if err != nil {
//	    return err
//	}
//	users := mongo.CollectionOf[User](db, "users")
//
//	adults, err := users.All(ctx,
//	    bson.D{{Key: "age", Value: bson.D{{Key: "$gte", Value: 18}}}},
//	    mongo.WithSort(bson.D{{Key: "age", Value: 1}}),
//	    mongo.WithLimit(50),
//	)
//
// For streaming consumption, subscribe to the publisher directly or pull
// through bridge.Iterate:
//
//	it := bridge.Iterate(ctx, users.Find(nil, mongo.WithBatchSize(100)))
//	defer it.Close()
//	for {
//	    u, ok, err := it.Next(ctx)
//	    if err != nil || !ok {
//	        break
//	    }
//	    process(u)
//	}
//
// Component wires the connection into the component registry for
// applications that manage infrastructure lifecycles centrally.
package mongo
