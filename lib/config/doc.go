// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for taskdeck
// binaries.
//
// The file is located by an explicit path (the --config flag, via
// [LoadFile]) or by [Load], which consults TASKDECK_CONFIG and then
// $HOME/.config/taskdeck/config.yaml. When no file exists, [Load]
// returns [Default]. Two environment variables override file values:
// TASKDECK_DATABASE replaces store.database and TASKDECK_SOCKET
// replaces service.socket.
//
// Path values support ${VAR} and ${VAR:-default} expansion after
// loading. ${HOME} and ${TASKDECK_ROOT} (the directory containing the
// default database) are always available.
package config
