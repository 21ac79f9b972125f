package utils

const REVISION = "1.0.0"
