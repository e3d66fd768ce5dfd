// Package worker implements the query router worker lifecycle and Redis Streams integration.
//
// The worker consumes routing requests from a Redis Stream consumer group, runs each one
// through the routing pipeline, and publishes the decision to the result stream. Requests
// that cannot be routed are acknowledged and reported on the result stream's ".errors" topic.
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(&redis.Options{...})
//	publisher := worker.NewRedisStreamPublisher(redisClient)
//
//	w := worker.NewWorker(cfg, redisClient, routerInstance, publisher, logger)
//	if err := w.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Stop(ctx)
//
// Decisions go to Redis Streams by default; set SINK=kafka to publish them to Kafka
// topics instead.
//
// Health checks are provided via a separate HTTP server:
//
//	healthServer := worker.NewHealthServer(8082, redisClient, pool, logger)
//	healthServer.Start()
//	defer healthServer.Stop()
package worker
