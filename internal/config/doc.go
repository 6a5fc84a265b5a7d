// Package config manages user-level settings stored at
// ~/.create-hest-app/config.yaml and the answers remembered between runs in
// preferences.yaml next to it.
package config
