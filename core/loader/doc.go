// Package loader wires HTTP features into the fiber app of "pathsync serve".
//
// A Feature names itself, says whether it should be loaded, and registers its routes
// on the router passed to Load. The Manager keeps features in registration order;
// LoadAll skips disabled ones, logs each loaded feature and stops at the first error.
//
//	mgr := loader.NewManager(logger)
//	mgr.Register(store.NewFeature(local, logger))
//	if err := mgr.LoadAll(app); err != nil {
//	    return err
//	}
package loader
